package graph

import "time"

// OData type names of the directory objects this application handles.
const (
	ODataTypeGroup            = "#microsoft.graph.group"
	ODataTypeUser             = "#microsoft.graph.user"
	ODataTypeServicePrincipal = "#microsoft.graph.servicePrincipal"
)

// GroupTypeUnified marks a Microsoft 365 group.
const GroupTypeUnified = "Unified"

// Group is the subset of the Graph group resource used here. Pointer
// booleans keep false values in request bodies.
type Group struct {
	ID              string     `json:"id,omitempty"`
	DisplayName     string     `json:"displayName,omitempty"`
	Description     string     `json:"description,omitempty"`
	Mail            string     `json:"mail,omitempty"`
	MailNickname    string     `json:"mailNickname,omitempty"`
	MailEnabled     *bool      `json:"mailEnabled,omitempty"`
	SecurityEnabled *bool      `json:"securityEnabled,omitempty"`
	GroupTypes      []string   `json:"groupTypes,omitempty"`
	Visibility      string     `json:"visibility,omitempty"`
	CreatedDateTime *time.Time `json:"createdDateTime,omitempty"`
}

// DirectoryObject is any member of a directory collection (users, groups,
// service principals, devices).
type DirectoryObject struct {
	ODataType         string `json:"@odata.type"`
	ID                string `json:"id"`
	DisplayName       string `json:"displayName,omitempty"`
	Mail              string `json:"mail,omitempty"`
	UserPrincipalName string `json:"userPrincipalName,omitempty"`
}

// Collection is one page of a Graph collection response.
type Collection[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink,omitempty"`
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
