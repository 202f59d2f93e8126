package controller

import (
	"study_quiz_backend/internal/service"
	"study_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// StartSessionRequest 开始答题会话
// swagger:model StartSessionRequest
type StartSessionRequest struct {
	DocumentID uint `json:"documentId" binding:"required"`
	Streak     int  `json:"streak"` // 连对阈值，缺省用服务端配置
}

// SessionAnswerRequest 会话内作答
// swagger:model SessionAnswerRequest
type SessionAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// UpdateSessionRequest 会话中途调整阈值
// swagger:model UpdateSessionRequest
type UpdateSessionRequest struct {
	Streak int `json:"streak" binding:"required"`
}

// StartSession godoc
// @Summary 开始一次答题会话
// @Description 活跃集 = 连对数未达阈值的题目；为空时直接返回完成态
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body StartSessionRequest true "文档ID与可选阈值"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.StartSession(ctx.Request.Context(), claims.UserID, req.DocumentID, req.Streak)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// NextQuestion godoc
// @Summary 取下一道题
// @Description 展示评语时唯一可用的操作；在活跃集中均匀随机选题，允许立刻重复
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id}/next [get]
func (c *QuizController) NextQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.NextQuestion(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Answer godoc
// @Summary 会话内作答当前题
// @Description 评测后答对推进连对数，达到阈值的题移出活跃集；活跃集清空即会话完成
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会话ID"
// @Param request body SessionAnswerRequest true "用户答案"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/quiz/sessions/{id}/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SessionAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.AnswerCurrent(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Answer)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// UpdateSession godoc
// @Summary 调整会话的连对阈值
// @Description 重筛活跃集；已移除的题不会回来，已落库的掌握标记不受影响
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "会话ID"
// @Param request body UpdateSessionRequest true "新的阈值"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/sessions/{id} [patch]
func (c *QuizController) UpdateSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.UpdateThreshold(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Streak)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
