package dto

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"

	"doctrack/internal/models"
)

type CreateRowRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Note     string `json:"note"`
}

type RowListResponse struct {
	Mode string       `json:"mode"`
	Rows []models.Row `json:"rows"`
}

type GroupedRowsResponse struct {
	Mode   string    `json:"mode"`
	Groups GroupList `json:"groups"`
}

type DeleteResponse struct {
	Status string    `json:"status"`
	ID     uuid.UUID `json:"id"`
}

type RowGroup struct {
	Key  string
	Rows []models.Row
}

// GroupList marshals as a JSON object whose keys appear in slice order.
// encoding/json sorts map keys, which would lose the first-seen
// category order the grouped endpoint promises.
type GroupList []RowGroup

func (g GroupList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		rows := group.Rows
		if rows == nil {
			rows = []models.Row{}
		}
		val, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
