package contentsvc

import (
	"testing"

	contentdto "pullnova_marketing/internal/api/content/dto"
	contentmodels "pullnova_marketing/internal/api/content/models"
)

func TestEditorUpdate_KhongDungDenTimestamps(t *testing.T) {
	update := editorUpdate(&contentdto.ContentUpsertInput{
		ID:         "64f000000000000000000001",
		Estado:     contentmodels.ContentEstadoBorrador,
		Plataforma: "facebook",
		CopyTexto:  "bài viết",
	})

	if _, has := update.Set["createdAt"]; has {
		t.Error("update từ editor không được $set createdAt, sẽ ghi đè thời gian tạo về 0")
	}
	if _, has := update.Set["updatedAt"]; has {
		t.Error("updatedAt do base service quản lý, editor update không được tự $set")
	}
	if update.Set["estado"] != contentmodels.ContentEstadoBorrador {
		t.Errorf("estado phải nằm trong $set, nhận %v", update.Set["estado"])
	}
	if update.Set["copy_texto"] != "bài viết" {
		t.Errorf("copy_texto phải nằm trong $set, nhận %v", update.Set["copy_texto"])
	}
}

func TestEditorUpdate_CoNgayDang(t *testing.T) {
	fecha := int64(1756600000000)
	update := editorUpdate(&contentdto.ContentUpsertInput{
		ID:               "64f000000000000000000001",
		Estado:           contentmodels.ContentEstadoProgramado,
		Plataforma:       "facebook",
		FechaPublicacion: &fecha,
		Imagenes:         []string{"https://img.example/a.jpg"},
	})

	if update.Set["fecha_publicacion"] != fecha {
		t.Errorf("fecha_publicacion phải nằm trong $set, nhận %v", update.Set["fecha_publicacion"])
	}
	if _, unset := update.Unset["fecha_publicacion"]; unset {
		t.Error("có ngày đăng thì không được $unset fecha_publicacion")
	}
	imagenes, ok := update.Set["imagenes"].([]string)
	if !ok || len(imagenes) != 1 {
		t.Errorf("imagenes phải nằm trong $set, nhận %v", update.Set["imagenes"])
	}
}

func TestEditorUpdate_XoaNgayDangPhaiUnset(t *testing.T) {
	update := editorUpdate(&contentdto.ContentUpsertInput{
		ID:         "64f000000000000000000001",
		Estado:     contentmodels.ContentEstadoProgramado,
		Plataforma: "facebook",
	})

	if _, has := update.Set["fecha_publicacion"]; has {
		t.Error("editor xóa ngày đăng thì fecha_publicacion không được nằm trong $set")
	}
	if _, unset := update.Unset["fecha_publicacion"]; !unset {
		t.Error("editor xóa ngày đăng thì phải $unset fecha_publicacion, không được để ngày cũ sống sót")
	}
	if _, unset := update.Unset["imagenes"]; !unset {
		t.Error("editor xóa ảnh thì phải $unset imagenes")
	}
}
