package controller

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ControlController struct {
	Service *service.ControlService
}

func NewControlController(svc *service.ControlService) *ControlController {
	return &ControlController{Service: svc}
}

// @Summary 控制测试列表
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Param createdBy query string false "创建教师ID"
// @Param assignedTo query string false "班级, 如 8 或 8А"
// @Success 200 {object} util.Response{data=[]model.ControlTest}
// @Router /control-tests [get]
func (c *ControlController) List(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var filter service.ControlTestFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tests, err := c.Service.List(ctx.Request.Context(), caller, filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary 获取控制测试
// @Description 教师看到完整题目与答案；学生只能看到分配给本班的测试, 不含答案
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Param testId path string true "控制测试ID"
// @Success 200 {object} util.Response{data=model.ControlTest}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /control-tests/{testId} [get]
func (c *ControlController) Get(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var (
		data interface{}
		err  error
	)
	if caller.Is(model.Student) {
		data, err = c.Service.GetForStudent(ctx.Request.Context(), caller, ctx.Param("testId"))
	} else {
		data, err = c.Service.Get(ctx.Request.Context(), caller, ctx.Param("testId"))
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// @Summary 创建控制测试
// @Tags 控制测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateControlTestInput true "控制测试"
// @Success 201 {object} util.Response{data=model.ControlTest}
// @Router /control-tests [post]
func (c *ControlController) Create(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.CreateControlTestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Create(ctx.Request.Context(), caller, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// @Summary 修改控制测试
// @Description 仅创建者或管理员; 未提供的字段保持不变
// @Tags 控制测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "控制测试ID"
// @Param body body service.UpdateControlTestInput true "要修改的字段"
// @Success 200 {object} util.Response{data=model.ControlTest}
// @Router /control-tests/{testId} [put]
func (c *ControlController) Update(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	var req service.UpdateControlTestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Update(ctx.Request.Context(), caller, ctx.Param("testId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary 删除控制测试
// @Description 同时删除其全部结果
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Param testId path string true "控制测试ID"
// @Success 200 {object} util.Response
// @Router /control-tests/{testId} [delete]
func (c *ControlController) Delete(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), caller, ctx.Param("testId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 我的控制测试
// @Description 分配给学生所在年级或班级的控制测试
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.StudentControlTest}
// @Router /student/control-tests [get]
func (c *ControlController) ListForStudent(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	tests, err := c.Service.ListForStudent(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary 提交控制测试
// @Description 分数按测试满分折算
// @Tags 控制测试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "控制测试ID"
// @Param body body service.SubmitInput true "答案"
// @Success 201 {object} util.Response{data=model.ControlResult}
// @Router /control-tests/{testId}/submit [post]
func (c *ControlController) Submit(ctx *gin.Context) {
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

// @Summary 控制测试结果
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Param testId path string true "控制测试ID"
// @Success 200 {object} util.Response{data=[]model.ControlResultRow}
// @Router /control-tests/{testId}/results [get]
func (c *ControlController) Results(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.Results(ctx.Request.Context(), caller, ctx.Param("testId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 教师的全部控制测试结果
// @Description 按完成时间倒序
// @Tags 控制测试
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ControlResultRow}
// @Router /teacher/control-tests/results [get]
func (c *ControlController) TeacherResults(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.TeacherResults(ctx.Request.Context(), caller)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
