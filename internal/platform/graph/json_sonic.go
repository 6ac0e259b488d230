//go:build sonic

package graph

import "github.com/bytedance/sonic"

// codec used by imroc/req for request and response bodies
var jsonMarshal = sonic.Marshal
var jsonUnmarshal = sonic.Unmarshal
