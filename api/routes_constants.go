package api

// Route path constants
// All backend routes are defined here to ensure consistency and prevent typos
const (
	// User routes
	RouteUserLogin         = "/user/login"
	RouteUserIDCheck       = "/user/id/check"
	RouteUserEmailCheck    = "/user/email/check"
	RouteUserRegister      = "/user/register"
	RouteUserLogout        = "/user/logout"
	RouteUserDelete        = "/user/delete"
	RouteUserResetPassword = "/user/reset-password"
	RouteUserValidateToken = "/user/validate-token"

	// Space routes
	RouteSpacesList   = "/spaces/list"
	RouteSpaces       = "/spaces" // /spaces/{id} for PATCH and DELETE
	RouteSpaceMembers = "/space-members"

	// Template routes
	RouteTemplateList   = "/template/list"
	RouteTemplateSave   = "/template/save"
	RouteTemplateDelete = "/template/delete"

	// Contact routes
	RouteSpaceContact = "/space/contact" // /space/contact/{spaceId} for GET
)

// preAuthRoutes are the endpoints whose authentication failures belong to the
// calling form, never to the session-expiry guard. A 401 from login means
// "wrong password", not "session expired", and the two must never be
// conflated.
var preAuthRoutes = map[string]struct{}{
	RouteUserLogin:      {},
	RouteUserIDCheck:    {},
	RouteUserEmailCheck: {},
}

func isPreAuthRoute(path string) bool {
	_, ok := preAuthRoutes[path]
	return ok
}
