package managers

import (
	log "github.com/sirupsen/logrus"
)

// AuditMgr records structured auth and notification events. Record is
// fire-and-forget: it never returns an error or panics back into the
// caller.
type AuditMgr interface {
	Record(category, eventType, subjectId string, success bool, details map[string]interface{})
}

// AuditManager writes audit events through logrus, one structured entry per
// event. Failures log at error level, successes at info.
type AuditManager struct{}

// NewAuditManager creates the logrus-backed audit sink.
func NewAuditManager() AuditMgr {
	log.Info("Initializing audit manager")
	return &AuditManager{}
}

// Record emits one audit entry. The subject id may be empty when the actor
// is unknown, e.g. a failed login for a nonexistent account.
func (am *AuditManager) Record(category, eventType, subjectId string, success bool, details map[string]interface{}) {
	defer func() {
		// A broken log hook must never take the auth path down with it.
		_ = recover()
	}()

	fields := log.Fields{
		"category": category,
		"event":    eventType,
		"success":  success,
	}
	if subjectId != "" {
		fields["subject"] = subjectId
	}
	for k, v := range details {
		fields[k] = v
	}

	entry := log.WithFields(fields)
	if success {
		entry.Info("audit event")
	} else {
		entry.Error("audit event")
	}
}
