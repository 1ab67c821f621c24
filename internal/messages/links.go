package messages

import (
	"fmt"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// LinkResolver returns the console path for an entity, or "" for none.
type LinkResolver func(action models.Action, entity models.Entity) string

// LinkTarget is the default LinkResolver. Deleted entities have no page.
func LinkTarget(action models.Action, entity models.Entity) string {
	if action.IsDeletion() {
		return ""
	}

	switch entity.Type {
	case "linode":
		return fmt.Sprintf("/linodes/%d", entity.ID)
	case "domain":
		return fmt.Sprintf("/domains/%d", entity.ID)
	case "nodebalancer":
		return fmt.Sprintf("/nodebalancers/%d", entity.ID)
	case "firewall":
		return fmt.Sprintf("/firewalls/%d", entity.ID)
	case "lkecluster":
		return fmt.Sprintf("/kubernetes/clusters/%d/summary", entity.ID)
	case "stackscript":
		return fmt.Sprintf("/stackscripts/%d", entity.ID)
	case "ticket":
		return fmt.Sprintf("/support/tickets/%d", entity.ID)
	case "placement_group":
		return fmt.Sprintf("/placement-groups/%d", entity.ID)
	case "vpc":
		return fmt.Sprintf("/vpcs/%d", entity.ID)
	case "user":
		return fmt.Sprintf("/account/users/%s/profile", entity.Label)
	case "volume":
		return "/volumes"
	case "image":
		return "/images"
	case "database":
		return "/databases"
	case "longview":
		return "/longview"
	case "bucket":
		return "/object-storage/buckets"
	default:
		return ""
	}
}
