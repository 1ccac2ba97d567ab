package domain

import "time"

// ActivityLimit is the default size of the recent activity list.
const ActivityLimit = 10

// Activity actions.
const (
	ActionCreate    = "CREATE"
	ActionUpdate    = "UPDATE"
	ActionDelete    = "DELETE"
	ActionPublish   = "PUBLISH"
	ActionUnpublish = "UNPUBLISH"
	ActionLogin     = "LOGIN"
	ActionIssue     = "ISSUE_TOKEN"
	ActionConsume   = "CONSUME_TOKEN"
)

// Entity types recorded in the activity log.
const (
	EntityProfile      = "profile"
	EntityNews         = "news"
	EntityMunicipality = "municipality"
	EntityDirectory    = "directory"
	EntityGazette      = "gazette"
	EntityUser         = "user"
	EntityToken        = "token"
)

// Activity is one entry of the admin audit trail.
type Activity struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Action     string    `json:"action" bson:"action"`
	EntityType string    `json:"entityType" bson:"entity_type"`
	EntityID   string    `json:"entityId" bson:"entity_id"`
	EntityName string    `json:"entityName" bson:"entity_name"`
	UserID     string    `json:"userId" bson:"user_id"`
	UserName   string    `json:"userName" bson:"user_name"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// NewActivity stamps an activity performed by the session user.
func NewActivity(s *Session, action, entityType, entityID, entityName string) Activity {
	a := Activity{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		CreatedAt:  time.Now().UTC(),
	}
	if s != nil {
		a.UserID = s.User.ID
		a.UserName = s.User.Name
		if a.UserName == "" {
			a.UserName = s.User.Username
		}
	}
	return a
}
