package handler

type ContextKey string

var (
	AuthUserCtx  ContextKey = "authUser"
	ComplaintCtx ContextKey = "complaint"
)
