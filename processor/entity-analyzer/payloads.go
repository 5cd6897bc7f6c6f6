package entityanalyzer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/semextract/ontology"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "analysis",
		Category:    "job",
		Version:     "v1",
		Description: "Document entity analysis job",
		Factory:     func() any { return &JobPayload{} },
	})
	if err != nil {
		panic("failed to register JobPayload: " + err.Error())
	}
}

// JobType is the message type for analysis job payloads.
var JobType = message.Type{Domain: "analysis", Category: "job", Version: "v1"}

// JobPayload implements message.Payload for document analysis jobs. The
// entity is carried as raw JSON so the payload can be registered without
// binding the message layer to the ontology model.
type JobPayload struct {
	JobID_      string          `json:"job_id"`
	Entity      json.RawMessage `json:"entity"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// JobID returns the job identifier.
func (p *JobPayload) JobID() string { return p.JobID_ }

// Schema returns the message type for Payload interface.
func (p *JobPayload) Schema() message.Type { return JobType }

// Validate validates the payload for Payload interface.
func (p *JobPayload) Validate() error {
	if p.JobID_ == "" {
		return errors.New("job ID is required")
	}
	if len(p.Entity) == 0 {
		return errors.New("entity is required")
	}
	return nil
}

// Document parses the carried entity against the model.
func (p *JobPayload) Document(model *ontology.Model) (*ontology.Entity, error) {
	return model.FromJSON(p.Entity)
}

// MarshalJSON implements json.Marshaler.
func (p *JobPayload) MarshalJSON() ([]byte, error) {
	type Alias JobPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *JobPayload) UnmarshalJSON(data []byte) error {
	type Alias JobPayload
	return json.Unmarshal(data, (*Alias)(p))
}
