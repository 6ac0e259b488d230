// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with one function field per interface method and
// default return values used when the function is not set:
//
//	groups := &mocks.MockGroupsService{
//	    GetGroupFn: func(ctx context.Context, id string) ([]domain.ResultItem, error) {
//	        return []domain.ResultItem{domain.NewResultItem(id, "Engineering")}, nil
//	    },
//	}
package mocks
