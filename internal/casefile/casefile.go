// Package casefile loads appraisal cases from JSON files. A case bundles the
// loss vehicle, the comparable set and the insurance valuation for one
// appraisal, which is the unit of work for the CLI and the MCP server.
package casefile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valuewise/marketval/schema"
)

// Case is one appraisal case as read from disk.
type Case struct {
	AppraisalID    string                     `json:"appraisalId"`
	LossVehicle    schema.LossVehicle         `json:"lossVehicle"`
	Comparables    []schema.ComparableVehicle `json:"comparables"`
	InsuranceValue float64                    `json:"insuranceValue"`
}

// Load reads and parses a case file from disk.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a case from JSON and normalizes it. Comparables without an ID
// get a generated UUID; missing appraisal IDs get one derived from the loss
// vehicle. The insurance value may be absent, which reads as 0 (unknown).
func Parse(data []byte) (*Case, error) {
	var c Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid case JSON: %w", err)
	}

	if strings.TrimSpace(c.AppraisalID) == "" {
		c.AppraisalID = "APP-" + uuid.NewString()
	}

	now := time.Now()
	for i := range c.Comparables {
		comp := &c.Comparables[i]
		if strings.TrimSpace(comp.ID) == "" {
			comp.ID = uuid.NewString()
		}
		if comp.AppraisalID == "" {
			comp.AppraisalID = c.AppraisalID
		}
		if comp.DateAdded.IsZero() {
			comp.DateAdded = now
		}
		if comp.CreatedAt.IsZero() {
			comp.CreatedAt = now
		}
		if comp.UpdatedAt.IsZero() {
			comp.UpdatedAt = now
		}
	}

	return &c, nil
}
