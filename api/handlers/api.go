package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/streetsight/streetsight/api"
	"github.com/streetsight/streetsight/config"
	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
	"github.com/streetsight/streetsight/store"
)

// App stores the router and its collaborators, so it can be reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Collection *issues.Collection
	Users      store.UserStore
	Uploads    *store.Uploads
	Hub        *Hub
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.MiddlewareStore{
		Users:       a.Users,
		TokenSecret: a.Config.TokenSecret,
		TokenTTL:    24 * time.Hour,
	}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	authH := Auth{Users: a.Users, MW: m}
	issueH := Issue{
		Collection: a.Collection,
		Uploads:    a.Uploads,
		Validator:  issues.NewMediaValidator(a.Config.MaxUploadBytes),
		Classifier: NewSimulatedClassifier(),
		Hub:        a.Hub,
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/register", http.HandlerFunc(authH.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/login", http.HandlerFunc(authH.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/issues/report", api.Middleware(http.HandlerFunc(issueH.SubmitReportHandler))).Methods("POST")
	apiCreate.Handle("/issues/reports", http.HandlerFunc(issueH.ListReportsHandler)).Methods("GET")
	apiCreate.Handle("/issues/map", http.HandlerFunc(issueH.MapDataHandler)).Methods("GET")
	apiCreate.Handle("/issues/nearby", http.HandlerFunc(issueH.NearbyHandler)).Methods("GET")
	apiCreate.Handle("/issues/{issue_id}/status", api.Middleware(http.HandlerFunc(issueH.UpdateStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/issues", http.HandlerFunc(issueH.ListReportsHandler)).Methods("GET")

	r.Handle("/ws", api.Middleware(http.HandlerFunc(a.Hub.ServeWS)))

	// submitted report images
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.Uploads.Dir()))))

	return r
}

// Initialize is invoked by main to set up the stores and create a router
func (a *App) Initialize() error {
	uploads, err := store.NewUploads(a.Config.UploadDir)
	if err != nil {
		zap.S().With(err).Error("failed to create upload store")
		return err
	}

	a.Uploads = uploads
	a.Users = store.NewUserStore()
	a.Collection = issues.NewCollection()
	a.Hub = NewHub()

	a.Router = a.New()
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
