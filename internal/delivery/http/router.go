package http

import (
	"net/http"

	"clinic-backend/internal/delivery/http/handler"
	"clinic-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	patientHandler   *handler.PatientHandler
	providerHandler  *handler.ProviderHandler
	surveyHandler    *handler.SurveyHandler
	recordingHandler *handler.RecordingHandler
	requestHandler   *handler.RecordingRequestHandler
	signatureHandler *handler.SignatureHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	providerHandler *handler.ProviderHandler,
	surveyHandler *handler.SurveyHandler,
	recordingHandler *handler.RecordingHandler,
	requestHandler *handler.RecordingRequestHandler,
	signatureHandler *handler.SignatureHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		patientHandler:   patientHandler,
		providerHandler:  providerHandler,
		surveyHandler:    surveyHandler,
		recordingHandler: recordingHandler,
		requestHandler:   requestHandler,
		signatureHandler: signatureHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/patients/register", r.patientHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/patients/login", r.patientHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/providers/register", r.providerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/providers/login", r.providerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.authMiddleware.Authenticate)
	auth.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetProfile).Methods(http.MethodGet)

	// Provider routes (protected - provider only)
	providers := api.PathPrefix("/providers").Subrouter()
	providers.Use(r.authMiddleware.Authenticate)
	providers.Use(middleware.RequireProvider)
	providers.HandleFunc("/search-patient", r.providerHandler.SearchPatient).Methods(http.MethodPost)
	providers.HandleFunc("/connect", r.providerHandler.Connect).Methods(http.MethodPost)
	providers.HandleFunc("/my-patients", r.providerHandler.MyPatients).Methods(http.MethodGet)
	providers.HandleFunc("/me", r.providerHandler.GetProviderInfo).Methods(http.MethodGet)

	// Survey routes (protected)
	surveys := api.PathPrefix("/surveys").Subrouter()
	surveys.Use(r.authMiddleware.Authenticate)
	surveys.HandleFunc("/create", r.surveyHandler.CreateSurvey).Methods(http.MethodPost)
	surveys.HandleFunc("/questions", r.surveyHandler.GetAllQuestions).Methods(http.MethodGet)
	surveys.Handle("/my-surveys", middleware.RequirePatient(http.HandlerFunc(r.surveyHandler.GetMySurveys))).Methods(http.MethodGet)
	surveys.HandleFunc("/patient/{patient_id}", r.surveyHandler.GetSurveysByPatient).Methods(http.MethodGet)
	surveys.HandleFunc("/{survey_id}/questions", r.surveyHandler.GetSurveyQuestions).Methods(http.MethodGet)
	surveys.HandleFunc("/{survey_id}/submit", r.surveyHandler.SubmitSurvey).Methods(http.MethodPost)

	// Recording routes (protected)
	recordings := api.PathPrefix("/recordings").Subrouter()
	recordings.Use(r.authMiddleware.Authenticate)
	recordings.HandleFunc("/upload", r.recordingHandler.Upload).Methods(http.MethodPost)
	recordings.HandleFunc("/by-patient", r.recordingHandler.ByPatient).Methods(http.MethodGet)
	recordings.HandleFunc("/provider-patient-recordings", r.recordingHandler.ProviderPatientRecordings).Methods(http.MethodGet)
	recordings.HandleFunc("/{id}/complete-request", r.recordingHandler.CompleteRequest).Methods(http.MethodPost)
	recordings.HandleFunc("/{id}", r.recordingHandler.Get).Methods(http.MethodGet)
	recordings.HandleFunc("/{id}", r.recordingHandler.Delete).Methods(http.MethodDelete)

	// Recording request routes (protected)
	requests := api.PathPrefix("/recording-requests").Subrouter()
	requests.Use(r.authMiddleware.Authenticate)
	requests.HandleFunc("/create", r.requestHandler.Create).Methods(http.MethodPost)
	requests.HandleFunc("/my-requests", r.requestHandler.MyRequests).Methods(http.MethodGet)
	requests.HandleFunc("/patient/{patient_id}", r.requestHandler.ListByPatient).Methods(http.MethodGet)

	// Signature routes (protected)
	signatures := api.PathPrefix("/signatures").Subrouter()
	signatures.Use(r.authMiddleware.Authenticate)
	signatures.HandleFunc("/for-patient", r.signatureHandler.ForPatient).Methods(http.MethodPost)
	signatures.HandleFunc("/by-patient", r.signatureHandler.ByPatient).Methods(http.MethodGet)
	// Listing and deleting signatures across patients is an admin surface
	signatures.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.signatureHandler.List))).Methods(http.MethodGet)
	signatures.HandleFunc("/{id}", r.signatureHandler.Get).Methods(http.MethodGet)
	signatures.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.signatureHandler.Delete))).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
