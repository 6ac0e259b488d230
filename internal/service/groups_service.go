package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/graph-snippets/internal/domain"
	"github.com/phrazzld/graph-snippets/internal/platform/graph"
	"github.com/phrazzld/graph-snippets/internal/platform/logger"
)

// Query options sent with the group operations.
const (
	groupListSelect   = "id,displayName"
	groupDetailSelect = "id,displayName,mail,description,createdDateTime,visibility,groupTypes"
	objectSelect      = "id,displayName,mail,userPrincipalName"
	unifiedFilter     = "groupTypes/any(a:a eq 'unified')"

	// NewGroupPrefix starts the display name of groups made by CreateGroup.
	NewGroupPrefix         = "Group"
	newGroupDescription    = "Group created by the graph-snippets sample"
	createdTimestampLayout = "2006-01-02 15:04 MST"
)

// GroupsService exposes one method per directory group operation. Each
// returns the affected directory objects as display items.
type GroupsService interface {
	// GetGroups lists every group in the tenant.
	GetGroups(ctx context.Context) ([]domain.ResultItem, error)

	// GetUnifiedGroups lists Microsoft 365 (unified) groups.
	GetUnifiedGroups(ctx context.Context) ([]domain.ResultItem, error)

	// GetMyMemberOfGroups lists the groups the signed-in user directly belongs to.
	GetMyMemberOfGroups(ctx context.Context) ([]domain.ResultItem, error)

	// CreateGroup creates a unified group with a generated name.
	CreateGroup(ctx context.Context) ([]domain.ResultItem, error)

	// GetGroup returns the group with the given id and its main properties.
	GetGroup(ctx context.Context, id string) ([]domain.ResultItem, error)

	// GetMembers lists the direct members of a group.
	GetMembers(ctx context.Context, id string) ([]domain.ResultItem, error)

	// GetOwners lists the owners of a group.
	GetOwners(ctx context.Context, id string) ([]domain.ResultItem, error)

	// UpdateGroup renames a group.
	UpdateGroup(ctx context.Context, id, name string) ([]domain.ResultItem, error)

	// DeleteGroup deletes a group. This cannot be undone.
	DeleteGroup(ctx context.Context, id string) ([]domain.ResultItem, error)
}

// graphGroupsService implements GroupsService on top of Microsoft Graph.
type graphGroupsService struct {
	client *graph.Client
	newID  func() string
	logger *slog.Logger
}

// Ensure graphGroupsService implements GroupsService interface
var _ GroupsService = (*graphGroupsService)(nil)

// NewGroupsService creates a GroupsService backed by client.
func NewGroupsService(client *graph.Client, logger *slog.Logger) (GroupsService, error) {
	if client == nil {
		return nil, fmt.Errorf("graph client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &graphGroupsService{
		client: client,
		newID:  uuid.NewString,
		logger: logger.With(slog.String("component", "groups_service")),
	}, nil
}

func (s *graphGroupsService) GetGroups(ctx context.Context) ([]domain.ResultItem, error) {
	groups, err := graph.ListAll[graph.Group](ctx, s.client, "/groups", url.Values{
		"$select": {groupListSelect},
	})
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get groups", Err: err}
	}
	return groupItems(groups), nil
}

func (s *graphGroupsService) GetUnifiedGroups(ctx context.Context) ([]domain.ResultItem, error) {
	groups, err := graph.ListAll[graph.Group](ctx, s.client, "/groups", url.Values{
		"$select": {groupListSelect},
		"$filter": {unifiedFilter},
	})
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get unified groups", Err: err}
	}
	return groupItems(groups), nil
}

func (s *graphGroupsService) GetMyMemberOfGroups(ctx context.Context) ([]domain.ResultItem, error) {
	objects, err := graph.ListAll[graph.DirectoryObject](ctx, s.client, "/me/memberOf", nil)
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get my member-of groups", Err: err}
	}

	// memberOf also returns directory roles and administrative units.
	items := make([]domain.ResultItem, 0, len(objects))
	for _, o := range objects {
		if o.ODataType != graph.ODataTypeGroup {
			continue
		}
		items = append(items, domain.NewResultItem(o.ID, o.DisplayName))
	}
	return items, nil
}

func (s *graphGroupsService) CreateGroup(ctx context.Context) ([]domain.ResultItem, error) {
	suffix := strings.ReplaceAll(s.newID(), "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	name := NewGroupPrefix + suffix

	var created graph.Group
	err := s.client.Post(ctx, "/groups", graph.Group{
		DisplayName:     name,
		Description:     newGroupDescription,
		MailNickname:    name,
		GroupTypes:      []string{graph.GroupTypeUnified},
		MailEnabled:     graph.Bool(true),
		SecurityEnabled: graph.Bool(false),
	}, &created)
	if err != nil {
		return nil, &GroupsServiceError{Operation: "create group", Err: err}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("group created",
		slog.String("group_id", created.ID),
		slog.String("display_name", created.DisplayName))

	return []domain.ResultItem{domain.NewResultItem(created.ID, created.DisplayName)}, nil
}

func (s *graphGroupsService) GetGroup(ctx context.Context, id string) ([]domain.ResultItem, error) {
	var g graph.Group
	err := s.client.Get(ctx, groupPath(id), url.Values{"$select": {groupDetailSelect}}, &g)
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get group", Err: err}
	}

	item := domain.NewResultItem(g.ID, g.DisplayName)
	item.SetProperty(domain.PropertyMail, g.Mail)
	item.SetProperty(domain.PropertyDescription, g.Description)
	item.SetProperty(domain.PropertyVisibility, g.Visibility)
	item.SetProperty(domain.PropertyGroupTypes, strings.Join(g.GroupTypes, ", "))
	if g.CreatedDateTime != nil {
		item.SetProperty(domain.PropertyCreated, g.CreatedDateTime.UTC().Format(createdTimestampLayout))
	}
	return []domain.ResultItem{item}, nil
}

func (s *graphGroupsService) GetMembers(ctx context.Context, id string) ([]domain.ResultItem, error) {
	objects, err := graph.ListAll[graph.DirectoryObject](ctx, s.client, groupPath(id)+"/members", url.Values{
		"$select": {objectSelect},
	})
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get members", Err: err}
	}
	return objectItems(objects), nil
}

func (s *graphGroupsService) GetOwners(ctx context.Context, id string) ([]domain.ResultItem, error) {
	objects, err := graph.ListAll[graph.DirectoryObject](ctx, s.client, groupPath(id)+"/owners", url.Values{
		"$select": {objectSelect},
	})
	if err != nil {
		return nil, &GroupsServiceError{Operation: "get owners", Err: err}
	}
	return objectItems(objects), nil
}

func (s *graphGroupsService) UpdateGroup(ctx context.Context, id, name string) ([]domain.ResultItem, error) {
	if err := s.client.Patch(ctx, groupPath(id), graph.Group{DisplayName: name}); err != nil {
		return nil, &GroupsServiceError{Operation: "update group", Err: err}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("group renamed", slog.String("group_id", id))

	item := domain.NewResultItem(id, name)
	item.SetProperty(domain.PropertyUpdated, time.Now().UTC().Format(createdTimestampLayout))
	return []domain.ResultItem{item}, nil
}

func (s *graphGroupsService) DeleteGroup(ctx context.Context, id string) ([]domain.ResultItem, error) {
	if err := s.client.Delete(ctx, groupPath(id)); err != nil {
		return nil, &GroupsServiceError{Operation: "delete group", Err: err}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("group deleted", slog.String("group_id", id))

	item := domain.NewResultItem(id, id)
	item.SetProperty(domain.PropertyDeleted, time.Now().UTC().Format(createdTimestampLayout))
	return []domain.ResultItem{item}, nil
}

func groupPath(id string) string {
	return "/groups/" + url.PathEscape(id)
}

func groupItems(groups []graph.Group) []domain.ResultItem {
	items := make([]domain.ResultItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, domain.NewResultItem(g.ID, g.DisplayName))
	}
	return items
}

// objectItems labels each object with its display name, falling back to
// the user principal name and finally the id.
func objectItems(objects []graph.DirectoryObject) []domain.ResultItem {
	items := make([]domain.ResultItem, 0, len(objects))
	for _, o := range objects {
		display := o.DisplayName
		if display == "" {
			display = o.UserPrincipalName
		}
		if display == "" {
			display = o.ID
		}
		item := domain.NewResultItem(o.ID, display)
		item.SetProperty(domain.PropertyMail, o.Mail)
		item.SetProperty(domain.PropertyObjectType, strings.TrimPrefix(o.ODataType, "#microsoft.graph."))
		items = append(items, item)
	}
	return items
}
