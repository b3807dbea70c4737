package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register
// @Description  Creates an account and issues an opaque access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      201   {object}  map[string]string  "username, accessToken"
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("register_failed", "username", input.Username, "err", err)
		}
		h.writeServiceError(c, err, "register_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username":    u.Username,
		"accessToken": u.AccessToken,
	})
}

// @Summary      Login
// @Description  Verifies credentials and returns the account's access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "username, accessToken"
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Login(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "username", input.Username, "err", err)
		}
		h.writeServiceError(c, err, "login_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    u.Username,
		"accessToken": u.AccessToken,
	})
}
