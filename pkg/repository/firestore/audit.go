package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/model"
	"github.com/remedian-lab/remedian/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *auditRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_action_audits"
	}
	return "action_audits"
}

func (r *auditRepository) Create(ctx context.Context, audit *model.ActionAudit) error {
	docRef := r.client.Collection(r.collection()).Doc(audit.ActionID.String())

	_, err := docRef.Create(ctx, audit)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.New("audit record already exists", goerr.V("actionID", audit.ActionID))
		}
		return goerr.Wrap(err, "failed to create audit record", goerr.V("actionID", audit.ActionID))
	}
	return nil
}

func (r *auditRepository) UpdateOutcome(ctx context.Context, actionID model.ActionID, outcome types.StagingStatus, recordID, errorNote string) error {
	docRef := r.client.Collection(r.collection()).Doc(actionID.String())

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Outcome", Value: outcome},
		{Path: "RecordID", Value: recordID},
		{Path: "ErrorNote", Value: errorNote},
		{Path: "ResolvedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "audit record not found", goerr.V("actionID", actionID))
		}
		return goerr.Wrap(err, "failed to update audit outcome", goerr.V("actionID", actionID))
	}
	return nil
}

func (r *auditRepository) GetByActionID(ctx context.Context, actionID model.ActionID) (*model.ActionAudit, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(actionID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "audit record not found", goerr.V("actionID", actionID))
		}
		return nil, goerr.Wrap(err, "failed to get audit record", goerr.V("actionID", actionID))
	}

	var audit model.ActionAudit
	if err := docSnap.DataTo(&audit); err != nil {
		return nil, goerr.Wrap(err, "failed to decode audit record", goerr.V("actionID", actionID))
	}
	return &audit, nil
}

func (r *auditRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*model.ActionAudit, error) {
	query := r.client.Collection(r.collection()).
		Where("SessionID", "==", sessionID).
		OrderBy("StagedAt", firestore.Desc)
	return r.list(ctx, query, limit)
}

func (r *auditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.ActionAudit, error) {
	query := r.client.Collection(r.collection()).
		Where("UserID", "==", userID).
		OrderBy("StagedAt", firestore.Desc)
	return r.list(ctx, query, limit)
}

func (r *auditRepository) list(ctx context.Context, query firestore.Query, limit int) ([]*model.ActionAudit, error) {
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	audits := make([]*model.ActionAudit, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit records")
		}

		var audit model.ActionAudit
		if err := docSnap.DataTo(&audit); err != nil {
			return nil, goerr.Wrap(err, "failed to decode audit record")
		}
		audits = append(audits, &audit)
	}

	return audits, nil
}
