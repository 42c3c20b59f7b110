// internals/route/details/evaluasi_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"perwadag_backend/internals/constants"
	dashController "perwadag_backend/internals/features/evaluasi/dashboard/controller"
	stController "perwadag_backend/internals/features/evaluasi/surat_tugas/controller"
	thpController "perwadag_backend/internals/features/evaluasi/tahapan/controller"
	"perwadag_backend/internals/helpers/oss"
	authmw "perwadag_backend/internals/middlewares/auth"
)

// EvaluasiRoutes: workflow surat tugas + tujuh tahapannya + dashboard.
// Router sudah ber-AuthJWT; GET dibuka untuk semua role (tetap di-scope
// di service), tulis hanya admin/inspektorat kecuali kuisioner.
func EvaluasiRoutes(protected fiber.Router, db *gorm.DB, storage oss.Storage) {
	stCtrl := stController.NewSuratTugasController(db, storage)
	spCtrl := thpController.NewSuratPemberitahuanController(db, storage)
	meetCtrl := thpController.NewMeetingController(db, storage)
	mtrCtrl := thpController.NewMatriksController(db, storage)
	lapCtrl := thpController.NewLaporanHasilController(db, storage)
	kuiCtrl := thpController.NewKuisionerController(db, storage)
	dashCtrl := dashController.NewDashboardController(db)

	evaluasi := protected.Group("/evaluasi")
	evaluatorOnly := authmw.OnlyRoles(
		constants.RoleErrorEvaluator("workflow evaluasi"), constants.EvaluatorRoles...)

	evaluasi.Get("/dashboard", dashCtrl.Summary)

	st := evaluasi.Group("/surat-tugas")
	st.Post("/", evaluatorOnly, stCtrl.Create)
	st.Get("/", stCtrl.List)
	st.Get("/:id", stCtrl.Detail)
	st.Patch("/:id", evaluatorOnly, stCtrl.Update)
	st.Delete("/:id", evaluatorOnly, stCtrl.Delete)
	st.Post("/:id/file", evaluatorOnly, stCtrl.UploadFile)

	// tahapan menempel di bawah surat tugas induknya
	sp := st.Group("/:suratTugasId/surat-pemberitahuan")
	sp.Get("/", spCtrl.Detail)
	sp.Patch("/", evaluatorOnly, spCtrl.Update)
	sp.Post("/file", evaluatorOnly, spCtrl.UploadFile)

	meet := st.Group("/:suratTugasId/meetings")
	meet.Get("/", meetCtrl.ListBySuratTugas)
	meet.Get("/:meetingType", meetCtrl.Detail)
	meet.Patch("/:meetingType", evaluatorOnly, meetCtrl.Update)
	meet.Post("/:meetingType/files", evaluatorOnly, meetCtrl.UploadFile)
	meet.Delete("/:meetingType/files/:fileKey", evaluatorOnly, meetCtrl.DeleteFile)

	mtr := st.Group("/:suratTugasId/matriks")
	mtr.Get("/", mtrCtrl.Detail)
	mtr.Patch("/", evaluatorOnly, mtrCtrl.Update)
	mtr.Post("/file", evaluatorOnly, mtrCtrl.UploadFile)

	lap := st.Group("/:suratTugasId/laporan-hasil")
	lap.Get("/", lapCtrl.Detail)
	lap.Patch("/", evaluatorOnly, lapCtrl.Update)
	lap.Post("/file", evaluatorOnly, lapCtrl.UploadFile)

	// kuisioner diisi perwadag sendiri, jadi tulis dibuka semua role
	// (scope tetap membatasi ke surat tugas miliknya)
	kui := st.Group("/:suratTugasId/kuisioner")
	kui.Get("/", kuiCtrl.Detail)
	kui.Patch("/", kuiCtrl.Update)
	kui.Post("/file", kuiCtrl.UploadFile)
}
