package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilFatalLogMsg is used if the app, cfg or client pointer is nil.
	ErrNilFatalLogMsg = "app, cfg or backend client is nil"

	// QueryNotice carries the notice of a redirect.
	QueryNotice = "notice"
	// QueryNext carries the view to return to after login.
	QueryNext = "next"
)
