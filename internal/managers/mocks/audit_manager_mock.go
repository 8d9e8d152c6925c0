package mocks

// NoopAuditManager discards audit events in tests.
type NoopAuditManager struct{}

func (NoopAuditManager) Record(category, eventType, subjectId string, success bool, details map[string]interface{}) {
}
