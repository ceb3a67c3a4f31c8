// Package backend is the client of the subdns REST API.
//
// Every call returns a Result carrying the status variant of the response
// (OK, Unauthorized, Forbidden, NotFound or Other) next to the decoded
// payload. The error return is reserved for transport and decoding
// failures, so callers branch on Result.Status for everything the backend
// answered and on err for everything it did not.
//
// A Client is shared by the whole process. Calls are made through a Conn,
// which binds the backend session cookie of one user:
//
//	conn := client.For(backend.Session(cookie))
//	res, err := conn.AvailableZones(ctx, "foo")
package backend
