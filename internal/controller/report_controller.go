package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// @Summary 导出班级成绩
// @Description 生成 CSV 并上传到存储，返回下载地址
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param grade path string true "班级ID或年级"
// @Param section query string false "分班"
// @Success 201 {object} util.Response{data=service.ClassExport}
// @Failure 403 {object} util.Response
// @Router /analytics/classes/{grade}/export [post]
func (c *ReportController) ExportClassResults(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	export, err := c.Service.ExportClassResults(ctx.Request.Context(), caller, ctx.Param("grade"), ctx.Query("section"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, export)
}
