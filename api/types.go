// Package api defines the HTTP wire types shared by the server and its
// clients.
package api

// CreateExperimentRequest is the body of POST /api/experiments.
type CreateExperimentRequest struct {
	ExperimentName  string `json:"experimentName"`
	QuestionSet     string `json:"questionSet"`
	ParticipantInfo string `json:"participantInfo"`
}

// CreateExperimentResponse is returned after a successful submission.
type CreateExperimentResponse struct {
	ID string `json:"id"`
}

// ExperimentResponse is a single experiment as served over HTTP. ID is
// derived from the record key and is not part of the stored blob.
type ExperimentResponse struct {
	ID                 string `json:"id"`
	ExperimentName     string `json:"experimentName"`
	Participant        string `json:"participant"`
	Timestamp          int64  `json:"timestamp"`
	EncryptedResponses string `json:"encryptedResponses"`
	Status             string `json:"status"`
}

// ListExperimentsResponse is the body of GET /api/experiments.
type ListExperimentsResponse struct {
	Experiments []ExperimentResponse `json:"experiments"`
}

// TxStatusResponse reports the transaction notifier's current state.
type TxStatusResponse struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

// AvailabilityResponse reports whether the backing store is reachable.
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Store     string `json:"store"`
}

// ErrorResponse is the body of any non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
