package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Service *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: svc}
}

// @Summary 班级统计
// @Description grade 可以是班级ID或年级
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param grade path string true "班级ID或年级"
// @Param section query string false "分班"
// @Success 200 {object} util.Response{data=model.ClassStats}
// @Failure 403 {object} util.Response
// @Router /analytics/classes/{grade}/stats [get]
func (c *AnalyticsController) GetClassStats(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	stats, err := c.Service.ClassStats(ctx.Request.Context(), caller, ctx.Param("grade"), ctx.Query("section"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 班级成绩时间线
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param grade path string true "班级ID或年级"
// @Param section query string false "分班"
// @Success 200 {object} util.Response{data=model.Timeline}
// @Router /analytics/classes/{grade}/timeline [get]
func (c *AnalyticsController) GetClassTimeline(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	timeline, err := c.Service.ClassTimeline(ctx.Request.Context(), caller, ctx.Param("grade"), ctx.Query("section"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, timeline)
}

// @Summary 学生成绩时间线
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "学生ID"
// @Success 200 {object} util.Response{data=model.Timeline}
// @Router /analytics/students/{studentId}/timeline [get]
func (c *AnalyticsController) GetStudentTimeline(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	timeline, err := c.Service.StudentTimeline(ctx.Request.Context(), caller, ctx.Param("studentId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, timeline)
}

// @Summary 教师学科统计
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param teacherId path string true "教师ID"
// @Success 200 {object} util.Response{data=[]model.TeacherSubjectStat}
// @Router /analytics/teachers/{teacherId}/subjects [get]
func (c *AnalyticsController) GetTeacherSubjects(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	stats, err := c.Service.TeacherSubjectAnalytics(ctx.Request.Context(), caller, ctx.Param("teacherId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 年级对比
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ClassComparison}
// @Router /analytics/classes/compare [get]
func (c *AnalyticsController) CompareClasses(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.CompareClasses(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 教师总览
// @Tags 教师分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.TeacherAnalytics}
// @Router /teacher/analytics [get]
func (c *AnalyticsController) GetTeacherAnalytics(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	out, err := c.Service.TeacherAnalytics(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary 模块难度分析
// @Tags 教师分析
// @Produce json
// @Security BearerAuth
// @Param subjectId query string true "学科ID"
// @Param grade query string true "年级"
// @Param section query string false "分班"
// @Success 200 {object} util.Response{data=model.ModuleDifficultyReport}
// @Failure 400 {object} util.Response
// @Router /teacher/analytics/subject-modules [get]
func (c *AnalyticsController) GetModuleDifficulty(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	report, err := c.Service.ModuleDifficulty(ctx.Request.Context(), caller,
		ctx.Query("subjectId"), ctx.Query("grade"), ctx.Query("section"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 模块难度分析选项
// @Tags 教师分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ModuleDifficultyOptions}
// @Router /teacher/analytics/subject-modules/options [get]
func (c *AnalyticsController) GetModuleDifficultyOptions(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	opts, err := c.Service.ModuleDifficultyOptions(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, opts)
}
