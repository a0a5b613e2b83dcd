package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type UserController struct {
	Identity *services.IdentityService
	Tokens   *utils.TokenManager
}

func NewUserController(identity *services.IdentityService, tokens *utils.TokenManager) *UserController {
	return &UserController{Identity: identity, Tokens: tokens}
}

// Register -> selalu membuat akun customer
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Identity.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", user)
}

// Login -> username atau email, mengembalikan JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Login    string `json:"login"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	login := input.Login
	if login == "" {
		login = input.Username
	}
	if login == "" {
		login = input.Email
	}
	if login == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username or email is required"))
		return
	}

	user, err := uc.Identity.Authenticate(c.Request.Context(), login, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := uc.Tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": user.Role,
		"user":      user,
	})
}

// Logout -> token dimasukkan ke blacklist
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.TokenKey)
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("token not found in context"))
		return
	}
	uc.Tokens.Revoke(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	user, err := uc.Identity.GetUser(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}
