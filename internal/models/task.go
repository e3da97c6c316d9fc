package models

const StatusPending = "pending"

type Task struct {
	ID     string
	Text   string
	Status string
}

// TaskPatch holds the fields of a partial update. Nil fields are left as stored.
type TaskPatch struct {
	Text   *string
	Status *string
}

func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Status == nil
}

// Fields returns the present fields keyed by their document names.
func (p TaskPatch) Fields() map[string]any {
	fields := make(map[string]any, 2)
	if p.Text != nil {
		fields["text"] = *p.Text
	}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	return fields
}
