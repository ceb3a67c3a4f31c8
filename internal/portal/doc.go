// Package portal is the domain record editor: it searches subdomains, opens
// and submits records, lists and renews owned domains and manages the
// session of one user.
//
// A Controller keeps no state between calls. Each operation takes its inputs,
// talks to the backend through the Backend interface and answers with a view
// model plus an Effect telling the caller which notice to show and which view
// to go to next. The web handlers and the CLI are thin adapters over it.
package portal
