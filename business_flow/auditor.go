package businessflow

import (
	"context"
	"log"

	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
)

// Auditor records entries on the admin activity trail. Recording is
// best-effort: an audit write failure is logged and swallowed so it
// never fails the business operation it describes.
type Auditor interface {
	Record(ctx context.Context, actorID *uint, action, target, description string, success bool, metadata *ClientMetadata)
}

type AuditorImpl struct {
	logRepo repository.AdminLogRepository
}

func NewAuditor(logRepo repository.AdminLogRepository) Auditor {
	return &AuditorImpl{logRepo: logRepo}
}

func (a *AuditorImpl) Record(ctx context.Context, actorID *uint, action, target, description string, success bool, metadata *ClientMetadata) {
	entry := &models.AdminLog{
		ActorUserID: actorID,
		Action:      action,
		Success:     utils.ToPtr(success),
		CreatedAt:   utils.UTCNow(),
	}
	if target != "" {
		entry.Target = &target
	}
	if description != "" {
		entry.Description = &description
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = &metadata.IPAddress
		}
		if metadata.RequestID != "" {
			entry.RequestID = &metadata.RequestID
		}
	}
	if err := a.logRepo.Save(ctx, entry); err != nil {
		log.Println("Audit record failed", action, err)
	}
}
