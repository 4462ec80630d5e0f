package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/pkg/minio"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	if err := s.userSvc.Register(c.Request.Context(), &registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.TokenDTO{Token: token})
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetUint64("user_id")
	userDTO, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	var userDTO dto.UserDTO
	if err := c.ShouldBind(&userDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&userDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdateProfile(c.Request.Context(), userID, &userDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ChangePassword(c *gin.Context) {
	var pwDTO dto.ChangePasswordDTO
	if err := c.ShouldBind(&pwDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&pwDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdatePassword(c.Request.Context(), userID, &pwDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UploadAvatar accepts an image, normalizes it to a bounded JPEG and
// stores it under a fresh object name.
func (s *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	normalized, err := util.NormalizeAvatar(reader)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ".jpg"
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, normalized, int64(normalized.Len()), "image/jpeg")
	if err != nil {
		log.ErrorContext(c.Request.Context(), "avatar upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.userSvc.UpdateAvatar(c.Request.Context(), userID, fileKey); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"avatar_url": minio.GetPublicURL(fileKey)})
}

func (s *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	hits, err := s.userSvc.SearchUsers(c.Request.Context(), query, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hits)
}

func (s *UserHandler) DeleteMe(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if err := s.userSvc.CancelUser(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) BanUser(c *gin.Context) {
	s.changeBan(c, true)
}

func (s *UserHandler) UnBanUser(c *gin.Context) {
	s.changeBan(c, false)
}

func (s *UserHandler) changeBan(c *gin.Context, ban bool) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if ban {
		err = s.userSvc.BanUser(c.Request.Context(), targetID)
	} else {
		err = s.userSvc.UnBanUser(c.Request.Context(), targetID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
