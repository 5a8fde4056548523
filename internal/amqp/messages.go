package amqp

import (
	"encoding/json"
	"time"
)

// ClassificationMessage announces one name→category pair learned during an
// analysis run, so other installs (and the worker's SQLite store) converge
// without re-prompting anyone.
type ClassificationMessage struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

func NewClassificationMessage(runID, name, category string) *ClassificationMessage {
	return &ClassificationMessage{
		RunID:     runID,
		Name:      name,
		Category:  category,
		Timestamp: time.Now().UTC(),
	}
}

func (m *ClassificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ClassificationMessageFromJSON(data []byte) (*ClassificationMessage, error) {
	var m ClassificationMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
