package controller

import (
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service  *service.AssessmentService
	Progress *service.ProgressService
}

func NewAssessmentController(svc *service.AssessmentService, progress *service.ProgressService) *AssessmentController {
	return &AssessmentController{Service: svc, Progress: progress}
}

// @Summary 开始测试
// @Description 返回随机排列的题目；未提交前重复调用返回相同顺序
// @Tags 测试
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response{data=service.RandomizedTest}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tests/{testId}/start [get]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	test, err := c.Service.StartAttempt(ctx.Request.Context(), caller, ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary 保存答题进度
// @Tags 测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Param body body service.ProgressInput true "当前进度"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /tests/{testId}/progress [post]
func (c *AssessmentController) SaveProgress(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.ProgressInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Progress.Save(ctx.Request.Context(), caller, ctx.Param("testId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 获取答题进度
// @Description 没有保存的进度时 data 为 null
// @Tags 测试
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response{data=model.Progress}
// @Router /tests/{testId}/progress [get]
func (c *AssessmentController) GetProgress(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	progress, err := c.Progress.Get(ctx.Request.Context(), caller, ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 提交测试
// @Tags 测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Param body body service.SubmitInput true "答案（题目原始序号 -> 选项原始序号）"
// @Success 201 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /tests/{testId}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.SubmitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), caller, ctx.Param("testId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 我的测试结果
// @Tags 测试结果
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Result}
// @Router /test-results [get]
func (c *AssessmentController) ListMyResults(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	results, err := c.Service.ResultsForStudent(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 测试结果详情
// @Tags 测试结果
// @Produce json
// @Security BearerAuth
// @Param resultId path string true "结果ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /test-results/{resultId} [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	result, err := c.Service.GetResult(ctx.Request.Context(), caller, ctx.Param("resultId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 某测试的我的结果
// @Tags 测试结果
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response{data=[]model.Result}
// @Router /tests/{testId}/results [get]
func (c *AssessmentController) ListTestResults(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	results, err := c.Service.ResultsForTest(ctx.Request.Context(), caller, ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 模块下可用的测试
// @Tags 测试
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.TestSummary}
// @Router /modules/{moduleId}/tests/available [get]
func (c *AssessmentController) ListAvailableTests(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	tests, err := c.Service.ListAvailableTests(ctx.Request.Context(), caller, ctx.Param("moduleId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary 为模块创建测试
// @Description 每个模块最多一个测试
// @Tags 测试管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "模块ID"
// @Param body body service.CreateTestInput true "测试内容"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 409 {object} util.Response
// @Router /modules/{moduleId}/tests [post]
func (c *AssessmentController) CreateTest(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.CreateTestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(ctx.Request.Context(), caller, ctx.Param("moduleId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary 更新测试
// @Description 只修改请求中出现的字段；发布时至少需要一道题
// @Tags 测试管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Param body body service.UpdateTestInput true "要修改的字段"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tests/{testId} [put]
func (c *AssessmentController) UpdateTest(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.UpdateTestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.UpdateTest(ctx.Request.Context(), caller, ctx.Param("testId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary 删除测试
// @Description 同时删除该测试的结果与进度
// @Tags 测试管理
// @Produce json
// @Security BearerAuth
// @Param testId path string true "测试ID"
// @Success 200 {object} util.Response
// @Router /tests/{testId} [delete]
func (c *AssessmentController) DeleteTest(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteTest(ctx.Request.Context(), caller, ctx.Param("testId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 删除模块
// @Tags 测试管理
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /modules/{moduleId} [delete]
func (c *AssessmentController) DeleteModule(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	if err := c.Service.DeleteModule(ctx.Request.Context(), caller, ctx.Param("moduleId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
