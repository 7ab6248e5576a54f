package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clusters", handler.ListClusters)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/coaches", handler.ListCoaches)
	mux.HandleFunc("GET /v1/coaches/{coachID}", handler.GetCoach)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedJoinRequestRoutes(mux, handler, verifier)
	registerAuthorizedTrainingPlanRoutes(mux, handler, verifier)
	registerAuthorizedAssignmentRoutes(mux, handler, verifier)
	registerAuthorizedProgressRoutes(mux, handler, verifier)
	registerAuthorizedOrchestrationRoutes(mux, handler, verifier)
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamRoster)))
	mux.Handle("POST /v1/teams/{teamID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTeam)))
	mux.Handle("GET /v1/coaches/me/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyCoachedTeams)))
}

func registerAuthorizedJoinRequestRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.CreateJoinRequest)))
	mux.Handle("GET /v1/join-requests/{requestID}", RequireAuth(verifier, http.HandlerFunc(handler.GetJoinRequest)))
	mux.Handle("POST /v1/join-requests/{requestID}/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveJoinRequest)))
	mux.Handle("POST /v1/join-requests/{requestID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectJoinRequest)))
	mux.Handle("POST /v1/join-requests/{requestID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelJoinRequest)))
	mux.Handle("GET /v1/players/me/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.ListMyJoinRequests)))
	mux.Handle("GET /v1/teams/{teamID}/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamJoinRequests)))
}

func registerAuthorizedTrainingPlanRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/training-plans", RequireAuth(verifier, http.HandlerFunc(handler.CreateTrainingPlan)))
	mux.Handle("POST /v1/training-plans/from-recommendation", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlanFromRecommendation)))
	mux.Handle("GET /v1/training-plans", RequireAuth(verifier, http.HandlerFunc(handler.ListTrainingPlans)))
	mux.Handle("GET /v1/training-plans/{planID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTrainingPlan)))
	mux.Handle("POST /v1/training-plans/{planID}/submit", RequireAuth(verifier, http.HandlerFunc(handler.SubmitTrainingPlan)))
	mux.Handle("POST /v1/training-plans/{planID}/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveTrainingPlan)))
	mux.Handle("POST /v1/training-plans/{planID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectTrainingPlan)))
	mux.Handle("POST /v1/training-plans/{planID}/archive", RequireAuth(verifier, http.HandlerFunc(handler.ArchiveTrainingPlan)))
	mux.Handle("GET /v1/coaches/me/training-plans", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTrainingPlans)))
}

func registerAuthorizedAssignmentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/assignments", RequireAuth(verifier, http.HandlerFunc(handler.CreateAssignment)))
	mux.Handle("GET /v1/assignments/{assignmentID}", RequireAuth(verifier, http.HandlerFunc(handler.GetAssignment)))
	mux.Handle("POST /v1/assignments/{assignmentID}/activate", RequireAuth(verifier, http.HandlerFunc(handler.ActivateAssignment)))
	mux.Handle("POST /v1/assignments/{assignmentID}/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelAssignment)))
	mux.Handle("GET /v1/players/me/assignments", RequireAuth(verifier, http.HandlerFunc(handler.ListMyAssignments)))
	mux.Handle("GET /v1/teams/{teamID}/assignments", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamAssignments)))
	mux.Handle("GET /v1/training-plans/{planID}/assignments", RequireAuth(verifier, http.HandlerFunc(handler.ListPlanAssignments)))
}

func registerAuthorizedProgressRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/assignments/{assignmentID}/progress", RequireAuth(verifier, http.HandlerFunc(handler.RecordProgress)))
	mux.Handle("GET /v1/assignments/{assignmentID}/progress", RequireAuth(verifier, http.HandlerFunc(handler.ListAssignmentProgress)))
	mux.Handle("GET /v1/progress/{recordID}", RequireAuth(verifier, http.HandlerFunc(handler.GetProgressRecord)))
	mux.Handle("POST /v1/progress/{recordID}/verify", RequireAuth(verifier, http.HandlerFunc(handler.VerifyProgress)))
}

func registerAuthorizedOrchestrationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/training/bulk-assign", RequireAuth(verifier, http.HandlerFunc(handler.BulkAssignTeamTraining)))
	mux.Handle("GET /v1/teams/{teamID}/training/overview", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamTrainingOverview)))
}
