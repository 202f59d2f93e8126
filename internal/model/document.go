package model

// 文档来源类型：纯文本直接入库，PDF经由大模型抽取文本
const (
	FileTypeText = "text"
	FileTypePDF  = "pdf"
)

// Document 用户上传的学习材料，题目随文档级联删除
// swagger:model Document
type Document struct {
	BaseModel
	UserID    uint       `gorm:"index;not null" json:"userId"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:longtext;not null" json:"-"`
	FileType  string     `gorm:"size:50;default:'text'" json:"fileType"`
	FileURL   string     `gorm:"size:512" json:"fileUrl,omitempty"` // 原始上传文件的存储地址，粘贴文本时为空
	FileKey   string     `gorm:"size:512" json:"-"`                 // 存储层对象键，删除文档时用
	Questions []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
