package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/model"
	"study_quiz_backend/internal/repository"
	"study_quiz_backend/internal/util"
	"study_quiz_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// DocumentService 文档上传、列表、题目查询和级联删除
type DocumentService struct {
	documents  *repository.DocumentRepository
	questions  *repository.QuestionRepository
	progress   *repository.ProgressRepository
	generation *GenerationService
	storage    *StorageService
	defaults   config.QuizConfig
}

func NewDocumentService(
	documents *repository.DocumentRepository,
	questions *repository.QuestionRepository,
	progress *repository.ProgressRepository,
	generation *GenerationService,
	storage *StorageService,
	defaults config.QuizConfig,
) *DocumentService {
	return &DocumentService{
		documents:  documents,
		questions:  questions,
		progress:   progress,
		generation: generation,
		storage:    storage,
		defaults:   defaults,
	}
}

// UpdateDefaults 配置热更新时替换默认出题参数
func (s *DocumentService) UpdateDefaults(defaults config.QuizConfig) {
	s.defaults = defaults
}

// UploadInput 上传请求：文件和粘贴文本二选一，都有时文件优先
type UploadInput struct {
	Title       string
	FileName    string
	FileData    []byte
	TextContent string
}

// DocumentView 文档列表项
type DocumentView struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	FileType       string    `json:"fileType"`
	CreatedAt      time.Time `json:"createdAt"`
	QuestionsCount int64     `json:"questionsCount"`
	CompletedCount int64     `json:"completedCount"`
}

// QuestionWithProgress 题目连同当前用户的进度快照，无进度记录时取零值
type QuestionWithProgress struct {
	ID           uint   `json:"id"`
	DocumentID   uint   `json:"documentId"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	TimesCorrect int    `json:"timesCorrect"`
	Completed    bool   `json:"completed"`
}

// QuestionList 文档的全部题目加聚合计数
type QuestionList struct {
	Questions          []QuestionWithProgress `json:"questions"`
	TotalQuestions     int                    `json:"totalQuestions"`
	CompletedQuestions int                    `json:"completedQuestions"`
}

// Upload 读取内容（纯文本直接入库，PDF经网关抽取文本）、生成题目并在一个事务里落库。
// 生成或解析失败时整个上传作废，不保存任何半成品
func (s *DocumentService) Upload(ctx context.Context, userID uint, in UploadInput) (*model.Document, error) {
	content, fileType, err := s.resolveContent(ctx, in)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Untitled Document"
	}

	fileURL, fileKey := "", ""
	if len(in.FileData) > 0 {
		fileURL, fileKey, err = s.storeOriginal(ctx, userID, in)
		if err != nil {
			// 原始文件留存失败不阻断上传，内容已经在手上了
			logger.Log.Warn("failed to store original upload", zap.Error(err))
			fileURL, fileKey = "", ""
		}
	}

	pairs, err := s.generation.GenerateQuestions(ctx, content, s.defaults.QuestionCount)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		UserID:   userID,
		Title:    title,
		Content:  content,
		FileType: fileType,
		FileURL:  fileURL,
		FileKey:  fileKey,
	}
	questions := make([]model.Question, len(pairs))
	for i, p := range pairs {
		questions[i] = model.Question{Question: p.Question, Answer: p.Answer}
	}

	if err := s.documents.CreateWithQuestions(doc, questions); err != nil {
		return nil, err
	}

	logger.Log.Info("document uploaded",
		zap.Uint("documentId", doc.ID),
		zap.String("fileType", fileType),
		zap.Int("questions", len(questions)))

	return doc, nil
}

// List 用户的全部文档，按创建时间倒序，附带题目总数与已掌握数
func (s *DocumentService) List(userID uint) ([]DocumentView, error) {
	docs, err := s.documents.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]DocumentView, 0, len(docs))
	for _, doc := range docs {
		stats, err := s.documents.Stats(doc.ID, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, DocumentView{
			ID:             doc.ID,
			Title:          doc.Title,
			FileType:       doc.FileType,
			CreatedAt:      doc.CreatedAt,
			QuestionsCount: stats.QuestionsCount,
			CompletedCount: stats.CompletedCount,
		})
	}
	return views, nil
}

// GetQuestions 文档全部题目连同当前用户进度与聚合计数
func (s *DocumentService) GetQuestions(userID, documentID uint) (*QuestionList, error) {
	doc, err := s.documents.FindByIDAndUser(documentID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, util.ErrNotFound
	}

	questions, err := s.questions.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	records, err := s.progress.ListByUserAndQuestions(userID, ids)
	if err != nil {
		return nil, err
	}
	progressMap := make(map[uint]*model.QuestionProgress, len(records))
	for i := range records {
		progressMap[records[i].QuestionID] = &records[i]
	}

	list := &QuestionList{
		Questions:      make([]QuestionWithProgress, 0, len(questions)),
		TotalQuestions: len(questions),
	}
	for _, q := range questions {
		item := QuestionWithProgress{
			ID:         q.ID,
			DocumentID: q.DocumentID,
			Question:   q.Question,
			Answer:     q.Answer,
		}
		if p, ok := progressMap[q.ID]; ok {
			item.TimesCorrect = p.TimesCorrect
			item.Completed = p.Completed
		}
		if item.Completed {
			list.CompletedQuestions++
		}
		list.Questions = append(list.Questions, item)
	}
	return list, nil
}

// Delete 删除文档，题目与进度记录由外键级联清除；原始文件尽力删除
func (s *DocumentService) Delete(ctx context.Context, userID, documentID uint) error {
	doc, err := s.documents.FindByIDAndUser(documentID, userID)
	if err != nil {
		return err
	}
	if doc == nil {
		return util.ErrNotFound
	}

	if err := s.documents.Delete(doc.ID); err != nil {
		return err
	}

	if doc.FileKey != "" {
		if err := s.storage.Provider.Delete(ctx, doc.FileKey); err != nil {
			logger.Log.Warn("failed to delete stored file", zap.String("fileKey", doc.FileKey), zap.Error(err))
		}
	}
	return nil
}

// resolveContent 从上传输入确定正文内容和来源类型
func (s *DocumentService) resolveContent(ctx context.Context, in UploadInput) (content, fileType string, err error) {
	if len(in.FileData) > 0 {
		ext := strings.ToLower(filepath.Ext(in.FileName))
		switch ext {
		case ".pdf":
			text, err := s.generation.ExtractPDFText(ctx, in.FileData)
			if err != nil {
				return "", "", err
			}
			return text, model.FileTypePDF, nil
		case ".txt", ".md":
			return string(in.FileData), model.FileTypeText, nil
		default:
			return "", "", fmt.Errorf("%w: unsupported file type %q, please upload PDF, TXT, or MD files", util.ErrInvalidInput, ext)
		}
	}

	if strings.TrimSpace(in.TextContent) != "" {
		return in.TextContent, model.FileTypeText, nil
	}

	return "", "", fmt.Errorf("%w: no content provided, please upload a file or provide text content", util.ErrInvalidInput)
}

func (s *DocumentService) storeOriginal(ctx context.Context, userID uint, in UploadInput) (url, key string, err error) {
	key = fmt.Sprintf("documents/%d_%d_%s", userID, time.Now().UnixNano(), filepath.Base(in.FileName))
	url, err = s.storage.Provider.Upload(ctx, key, bytes.NewReader(in.FileData), int64(len(in.FileData)), "application/octet-stream")
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}
