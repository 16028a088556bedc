package controller

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentCaller writes a 401 and reports false when no claims are present.
func currentCaller(ctx *gin.Context) (model.Caller, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return model.Caller{}, false
	}
	return claims.Caller(), true
}
