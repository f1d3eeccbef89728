package http

import (
	"net/http"

	"clinic-records-api/internal/delivery/http/handler"
	"clinic-records-api/internal/delivery/http/middleware"
	"clinic-records-api/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	doctorHandler        *handler.DoctorHandler
	patientHandler       *handler.PatientHandler
	patientRecordHandler *handler.PatientRecordHandler
	departmentHandler    *handler.DepartmentHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	patientRecordHandler *handler.PatientRecordHandler,
	departmentHandler *handler.DepartmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		doctorHandler:        doctorHandler,
		patientHandler:       patientHandler,
		patientRecordHandler: patientRecordHandler,
		departmentHandler:    departmentHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		loggingMiddleware:    loggingMiddleware,
	}
}

// Setup registers every route. CORS and request logging wrap the whole mux so
// preflight and unmatched requests pass through them too.
func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	r.router.HandleFunc("/register/", r.authHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/login/", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/token/refresh/", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	r.router.Handle("/logout/", r.protected(r.authHandler.Logout)).Methods(http.MethodPost)
	r.router.Handle("/me/", r.protected(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)

	// Departments (public)
	r.router.HandleFunc("/departments/", r.departmentHandler.GetAllDepartments).Methods(http.MethodGet)
	r.router.HandleFunc("/departments/", r.departmentHandler.CreateDepartment).Methods(http.MethodPost)

	// Doctors: the collection is for doctors, a profile is for its owner
	doctors := r.router.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Handle("/", middleware.RequireDoctor(http.HandlerFunc(r.doctorHandler.GetAllDoctors))).Methods(http.MethodGet)
	doctors.Handle("/", middleware.RequireDoctor(http.HandlerFunc(r.doctorHandler.CreateDoctor))).Methods(http.MethodPost)
	doctors.HandleFunc("/{id:[0-9]+}/", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{id:[0-9]+}/", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	doctors.HandleFunc("/{id:[0-9]+}/", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Patients
	patients := r.router.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("/", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	patients.HandleFunc("/", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("/{id}/", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}/", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}/", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Patient records
	records := r.router.PathPrefix("/patient_records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("/", r.patientRecordHandler.GetAllRecords).Methods(http.MethodGet)
	records.HandleFunc("/", r.patientRecordHandler.CreateRecord).Methods(http.MethodPost)
	records.HandleFunc("/{id:[0-9]+}/", r.patientRecordHandler.GetRecord).Methods(http.MethodGet)
	records.HandleFunc("/{id:[0-9]+}/", r.patientRecordHandler.UpdateRecord).Methods(http.MethodPut)
	records.HandleFunc("/{id:[0-9]+}/", r.patientRecordHandler.DeleteRecord).Methods(http.MethodDelete)

	// Department members
	department := r.router.PathPrefix("/department").Subrouter()
	department.Use(r.authMiddleware.Authenticate)
	department.HandleFunc("/{id:[0-9]+}/doctors/", r.departmentHandler.GetDepartmentDoctors).Methods(http.MethodGet)
	department.HandleFunc("/{id:[0-9]+}/doctors/", r.departmentHandler.UpdateDepartmentDoctors).Methods(http.MethodPut)
	department.HandleFunc("/{id:[0-9]+}/patients/", r.departmentHandler.GetDepartmentPatients).Methods(http.MethodGet)
	department.HandleFunc("/{id:[0-9]+}/patients/", r.departmentHandler.UpdateDepartmentPatients).Methods(http.MethodPut)

	// Audit trail of the caller
	auditLogs := r.router.PathPrefix("/audit_logs").Subrouter()
	auditLogs.Use(r.authMiddleware.Authenticate)
	auditLogs.HandleFunc("/", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id:[0-9]+}/", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

func (r *Router) protected(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
