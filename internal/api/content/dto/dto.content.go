package dto

// ContentUpsertInput là payload mirror một content item từ content editor.
// Đây là điểm vào của AutoScheduleReconciler: mỗi lần editor tạo/sửa content,
// bản ghi được upsert và publication pending tương ứng được đồng bộ lại.
type ContentUpsertInput struct {
	ID               string   `json:"id,omitempty"`                                     // ID content (rỗng = tạo mới)
	Estado           string   `json:"estado" validate:"required"`                       // Trạng thái từ editor
	FechaPublicacion *int64   `json:"fecha_publicacion,omitempty"`                      // Thời điểm đăng dự kiến (UnixMilli)
	Plataforma       string   `json:"plataforma" validate:"required,platform"`          // Platform đích
	CopyTexto        string   `json:"copy_texto,omitempty"`                             // Copy text
	Contenido        string   `json:"contenido,omitempty"`                              // Nội dung gốc
	Titulo           string   `json:"titulo,omitempty"`                                 // Tiêu đề
	Imagenes         []string `json:"imagenes,omitempty" validate:"omitempty,dive,url"` // URL ảnh
}
