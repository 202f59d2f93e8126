package controller

import (
	"io"
	"strconv"
	"study_quiz_backend/internal/service"
	"study_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService   *service.DocumentService
	GenerationService *service.GenerationService
}

func NewDocumentController(documentService *service.DocumentService, generationService *service.GenerationService) *DocumentController {
	return &DocumentController{
		DocumentService:   documentService,
		GenerationService: generationService,
	}
}

// ParseRequest 原始问答文本解析请求
// swagger:model ParseRequest
type ParseRequest struct {
	Input string `json:"input" binding:"required"`
}

// Upload godoc
// @Summary 上传学习材料并生成题目
// @Description 接收文件（txt/md/pdf）或粘贴文本，生成问答对后一并入库；生成失败则整体作废
// @Tags 文档
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string false "文档标题"
// @Param file formData file false "学习材料文件"
// @Param textContent formData string false "粘贴的文本内容"
// @Success 201 {object} util.Response{data=model.Document}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	in := service.UploadInput{
		Title:       ctx.PostForm("title"),
		TextContent: ctx.PostForm("textContent"),
	}

	if file, err := ctx.FormFile("file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		in.FileName = file.Filename
		in.FileData = data
	}

	doc, err := c.DocumentService.Upload(ctx.Request.Context(), claims.UserID, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, doc)
}

// List godoc
// @Summary 当前用户的文档列表
// @Description 按创建时间倒序，附带题目总数与已掌握数
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.DocumentView}
// @Router /api/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	docs, err := c.DocumentService.List(claims.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"documents": docs})
}

// GetQuestions godoc
// @Summary 文档的全部题目及当前用户进度
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "文档ID"
// @Success 200 {object} util.Response{data=service.QuestionList}
// @Failure 404 {object} util.Response
// @Router /api/documents/{id}/questions [get]
func (c *DocumentController) GetQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	documentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	list, err := c.DocumentService.GetQuestions(claims.UserID, uint(documentID))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Delete godoc
// @Summary 删除文档
// @Description 题目与答题进度随外键级联删除
// @Tags 文档
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "文档ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	documentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid document id")
		return
	}

	if err := c.DocumentService.Delete(ctx.Request.Context(), claims.UserID, uint(documentID)); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ParseRawInput godoc
// @Summary 解析粘贴的原始问答文本
// @Description 整理成 question/answer 数组，缺失的答案由模型独立补全
// @Tags 文档
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ParseRequest true "原始问答文本"
// @Success 200 {object} util.Response{data=[]model.QAPair}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/documents/parse [post]
func (c *DocumentController) ParseRawInput(ctx *gin.Context) {
	var req ParseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pairs, err := c.GenerationService.ParseRawInput(ctx.Request.Context(), req.Input)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, pairs)
}
