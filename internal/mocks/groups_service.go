package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/graph-snippets/internal/domain"
)

// MockGroupsService implements service.GroupsService for testing
type MockGroupsService struct {
	GetGroupsFn           func(ctx context.Context) ([]domain.ResultItem, error)
	GetUnifiedGroupsFn    func(ctx context.Context) ([]domain.ResultItem, error)
	GetMyMemberOfGroupsFn func(ctx context.Context) ([]domain.ResultItem, error)
	CreateGroupFn         func(ctx context.Context) ([]domain.ResultItem, error)
	GetGroupFn            func(ctx context.Context, id string) ([]domain.ResultItem, error)
	GetMembersFn          func(ctx context.Context, id string) ([]domain.ResultItem, error)
	GetOwnersFn           func(ctx context.Context, id string) ([]domain.ResultItem, error)
	UpdateGroupFn         func(ctx context.Context, id, name string) ([]domain.ResultItem, error)
	DeleteGroupFn         func(ctx context.Context, id string) ([]domain.ResultItem, error)

	// Default return values
	Items        []domain.ResultItem
	DefaultError error

	mu    sync.Mutex
	calls []string
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockGroupsService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGroupsService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *MockGroupsService) list(ctx context.Context, name string, fn func(context.Context) ([]domain.ResultItem, error)) ([]domain.ResultItem, error) {
	m.record(name)
	if fn != nil {
		return fn(ctx)
	}
	return m.Items, m.DefaultError
}

func (m *MockGroupsService) byID(ctx context.Context, name, id string, fn func(context.Context, string) ([]domain.ResultItem, error)) ([]domain.ResultItem, error) {
	m.record(name)
	if fn != nil {
		return fn(ctx, id)
	}
	return m.Items, m.DefaultError
}

// GetGroups implements the GroupsService.GetGroups method
func (m *MockGroupsService) GetGroups(ctx context.Context) ([]domain.ResultItem, error) {
	return m.list(ctx, "GetGroups", m.GetGroupsFn)
}

// GetUnifiedGroups implements the GroupsService.GetUnifiedGroups method
func (m *MockGroupsService) GetUnifiedGroups(ctx context.Context) ([]domain.ResultItem, error) {
	return m.list(ctx, "GetUnifiedGroups", m.GetUnifiedGroupsFn)
}

// GetMyMemberOfGroups implements the GroupsService.GetMyMemberOfGroups method
func (m *MockGroupsService) GetMyMemberOfGroups(ctx context.Context) ([]domain.ResultItem, error) {
	return m.list(ctx, "GetMyMemberOfGroups", m.GetMyMemberOfGroupsFn)
}

// CreateGroup implements the GroupsService.CreateGroup method
func (m *MockGroupsService) CreateGroup(ctx context.Context) ([]domain.ResultItem, error) {
	return m.list(ctx, "CreateGroup", m.CreateGroupFn)
}

// GetGroup implements the GroupsService.GetGroup method
func (m *MockGroupsService) GetGroup(ctx context.Context, id string) ([]domain.ResultItem, error) {
	return m.byID(ctx, "GetGroup", id, m.GetGroupFn)
}

// GetMembers implements the GroupsService.GetMembers method
func (m *MockGroupsService) GetMembers(ctx context.Context, id string) ([]domain.ResultItem, error) {
	return m.byID(ctx, "GetMembers", id, m.GetMembersFn)
}

// GetOwners implements the GroupsService.GetOwners method
func (m *MockGroupsService) GetOwners(ctx context.Context, id string) ([]domain.ResultItem, error) {
	return m.byID(ctx, "GetOwners", id, m.GetOwnersFn)
}

// UpdateGroup implements the GroupsService.UpdateGroup method
func (m *MockGroupsService) UpdateGroup(ctx context.Context, id, name string) ([]domain.ResultItem, error) {
	m.record("UpdateGroup")
	if m.UpdateGroupFn != nil {
		return m.UpdateGroupFn(ctx, id, name)
	}
	return m.Items, m.DefaultError
}

// DeleteGroup implements the GroupsService.DeleteGroup method
func (m *MockGroupsService) DeleteGroup(ctx context.Context, id string) ([]domain.ResultItem, error) {
	return m.byID(ctx, "DeleteGroup", id, m.DeleteGroupFn)
}
