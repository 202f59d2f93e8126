package controller

import (
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/service"
	"study_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluateController struct {
	EvaluationService *service.EvaluationService
	Defaults          config.QuizConfig
}

func NewEvaluateController(evaluationService *service.EvaluationService, defaults config.QuizConfig) *EvaluateController {
	return &EvaluateController{
		EvaluationService: evaluationService,
		Defaults:          defaults,
	}
}

// EvaluateRequest 自由文本作答评测请求
// swagger:model EvaluateRequest
type EvaluateRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// EvaluateResponse 评测结果
// swagger:model EvaluateResponse
type EvaluateResponse struct {
	Message      string `json:"message"`
	Correct      bool   `json:"correct"`
	TimesCorrect int    `json:"timesCorrect"`
	Completed    bool   `json:"completed"`
}

// Evaluate godoc
// @Summary 评测一次作答
// @Description 由大模型比对用户答案与参考答案给出评语，按默认阈值推进连对进度。
// @Description message 为Markdown文本，前端展示前需做净化
// @Tags 评测
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body EvaluateRequest true "题目ID与用户答案"
// @Success 200 {object} util.Response{data=EvaluateResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 504 {object} util.Response
// @Router /api/evaluate [post]
func (c *EvaluateController) Evaluate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	verdict, progress, err := c.EvaluationService.Evaluate(
		ctx.Request.Context(), claims.UserID, req.QuestionID, req.Answer, c.Defaults.RequiredStreak)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, EvaluateResponse{
		Message:      verdict.Message,
		Correct:      verdict.Correct,
		TimesCorrect: progress.TimesCorrect,
		Completed:    progress.Completed,
	})
}
