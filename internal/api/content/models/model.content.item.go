package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentEstado định nghĩa các trạng thái của content item.
// Tên trạng thái giữ nguyên theo content editor (hệ thống bên ngoài).
const (
	ContentEstadoBorrador   = "borrador"   // Bản nháp
	ContentEstadoAprobado   = "aprobado"   // Đã duyệt, chưa lên lịch
	ContentEstadoProgramado = "programado" // Đã lên lịch đăng
	ContentEstadoPublicado  = "publicado"  // Đã đăng thành công
)

// ContentItem đại diện cho một content item từ content editor.
// Pipeline chỉ đọc các trường này; trường duy nhất pipeline ghi là Estado (chuyển sang "publicado").
// Tên field bson/json giữ nguyên theo store của editor.
type ContentItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của content item

	// ===== EDITOR FIELDS =====
	Estado           string `json:"estado" bson:"estado" index:"single:1"`                                // Trạng thái: borrador, aprobado, programado, publicado
	FechaPublicacion *int64 `json:"fecha_publicacion,omitempty" bson:"fecha_publicacion,omitempty"`       // Thời điểm đăng dự kiến (UnixMilli, nullable)
	Plataforma       string `json:"plataforma" bson:"plataforma" index:"single:1"`                        // Platform đích: facebook, instagram, linkedin
	CopyTexto        string `json:"copy_texto,omitempty" bson:"copy_texto,omitempty"`                     // Copy text dùng khi đăng
	Contenido        string `json:"contenido,omitempty" bson:"contenido,omitempty"`                       // Nội dung gốc (fallback khi không có copy_texto)
	Titulo           string `json:"titulo,omitempty" bson:"titulo,omitempty"`                             // Tiêu đề (fallback cuối)
	Imagenes         []string `json:"imagenes,omitempty" bson:"imagenes,omitempty"`                       // Danh sách URL ảnh kèm theo

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// PublishText trả về text dùng để đăng bài theo thứ tự ưu tiên:
// copy_texto -> contenido -> titulo.
func (c *ContentItem) PublishText() string {
	if c.CopyTexto != "" {
		return c.CopyTexto
	}
	if c.Contenido != "" {
		return c.Contenido
	}
	return c.Titulo
}
