package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/dto"
	"gymmate/internal/pkg/consts"
	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// SignUp 开放注册入口，已登录用户不允许重复注册
func (s *AccountHandler) SignUp(c *gin.Context) {
	if c.GetUint64("user_id") != 0 {
		response.Error(c, service.ErrMethodNotAllowed)
		return
	}
	var signUpDTO dto.SignUpDTO
	err := c.ShouldBind(&signUpDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&signUpDTO); err != nil {
		response.Error(c, err)
		return
	}
	userDTO, err := s.accountSvc.SignUp(c.Request.Context(), &signUpDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, userDTO)
}

func (s *AccountHandler) Login(c *gin.Context) {
	var credDTO dto.CredentialDTO
	err := c.ShouldBind(&credDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&credDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.accountSvc.Login(c.Request.Context(), &credDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]string{
		"token": token,
	})
}

func (s *AccountHandler) Logout(c *gin.Context) {
	err := s.accountSvc.Logout(c.Request.Context(), c.GetString("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *AccountHandler) Activate(c *gin.Context) {
	token := c.Param("token")
	err := s.accountSvc.Activate(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Detail(c, http.StatusOK, "Account activated")
}

func (s *AccountHandler) ForgotPassword(c *gin.Context) {
	var forgotDTO dto.ForgotPasswordDTO
	err := c.ShouldBind(&forgotDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&forgotDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.accountSvc.ForgotPassword(c.Request.Context(), &forgotDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Detail(c, http.StatusOK, "Password reset email sent")
}

func (s *AccountHandler) ResetPassword(c *gin.Context) {
	var resetDTO dto.ResetPasswordDTO
	err := c.ShouldBind(&resetDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&resetDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.accountSvc.ResetPassword(c.Request.Context(), &resetDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Detail(c, http.StatusOK, "Password has been reset")
}

func (s *AccountHandler) Me(c *gin.Context) {
	actorID := c.GetUint64("user_id")
	userDTO, err := s.accountSvc.GetUser(c.Request.Context(), actorID, c.GetBool("is_staff"), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, userDTO)
}

func (s *AccountHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userDTO, err := s.accountSvc.GetUser(c.Request.Context(), c.GetUint64("user_id"), c.GetBool("is_staff"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, userDTO)
}

func (s *AccountHandler) ListUsers(c *gin.Context) {
	filter := &repository.UserFilter{
		Username:  c.Query("username"),
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
	}
	page := pageParams(c)
	users, total, err := s.accountSvc.ListUsers(c.Request.Context(), c.GetUint64("user_id"), c.GetBool("is_staff"), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, users)
}

func (s *AccountHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updateDTO dto.UpdateUserDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	userDTO, err := s.accountSvc.UpdateUser(c.Request.Context(), c.GetUint64("user_id"), c.GetBool("is_staff"), id, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, userDTO)
}

func (s *AccountHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.accountSvc.DeleteUser(c.Request.Context(), c.GetUint64("user_id"), c.GetBool("is_staff"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadAvatar 更新头像，旧头像对象随之清理
func (s *AccountHandler) UploadAvatar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("avatar", "Upload a valid image.")
		response.Error(c, fieldErrs)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	userDTO, err := s.accountSvc.UpdateAvatar(c.Request.Context(), c.GetUint64("user_id"), c.GetBool("is_staff"), id, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, userDTO)
}
