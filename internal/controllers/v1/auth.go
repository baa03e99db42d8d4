package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homebudget/backend/internal/auth"
	"github.com/homebudget/backend/internal/httputil"
	"github.com/homebudget/backend/internal/models"
)

// Registration is the request body for registering a new user.
type Registration struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Username string `json:"username" binding:"required,max=50" example:"jane"`
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery staple"` // At least 8 characters
}

// Login is the request body for logging in.
type Login struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// Session is a token for the user together with their profile.
type Session struct {
	Token string  `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token for the Authorization header
	User  Profile `json:"user"`
}

type SessionResponse struct {
	Data Session `json:"data"` // Data for the session
}

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed. They must not require authentication.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/registration", co.OptionsAuth)
	r.POST("/registration", co.Register)
	r.OPTIONS("/login", co.OptionsAuth)
	r.POST("/login", co.Login)
}

// OptionsAuth returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Authentication
//	@Success		204
//	@Router			/v1/auth/registration [options]
//	@Router			/v1/auth/login [options]
func (co Controller) OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Register registers a new user
//
//	@Summary		Register
//	@Description	Registers a new user and returns a token for them
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		201				{object}	SessionResponse
//	@Failure		400				{object}	httpError
//	@Failure		500				{object}	httpError
//	@Param			registration	body		Registration	true	"Registration"
//	@Router			/v1/auth/registration [post]
func (co Controller) Register(c *gin.Context) {
	var registration Registration
	if err := httputil.BindData(c, &registration); err != nil {
		writeError(c, err)
		return
	}

	user, err := auth.Register(co.DB, registration.Email, registration.Username, registration.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	co.writeSession(c, http.StatusCreated, user)
}

// Login logs in a user
//
//	@Summary		Log in
//	@Description	Returns a token for the user with the given credentials
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	SessionResponse
//	@Failure		400		{object}	httpError
//	@Failure		401		{object}	httpError
//	@Failure		500		{object}	httpError
//	@Param			login	body		Login	true	"Credentials"
//	@Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var login Login
	if err := httputil.BindData(c, &login); err != nil {
		writeError(c, err)
		return
	}

	user, err := auth.Authenticate(co.DB, login.Email, login.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	co.writeSession(c, http.StatusOK, user)
}

func (co Controller) writeSession(c *gin.Context, httpStatus int, user models.User) {
	token, err := co.Tokens.Generate(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(httpStatus, SessionResponse{Data: Session{Token: token, User: co.newProfile(user)}})
}
