// Package domain contains the entities shared by the directory facade and
// the view layer. Directory objects of every kind (groups, users, service
// principals) are flattened into ResultItem values for display.
package domain
