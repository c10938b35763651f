package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConceptNotFound = errors.New("concept not found")
	ErrInvalidAction   = errors.New("invalid progress action")
)

// CycleDiagnostic 记录一次遍历中发现的前置环
// 环不致命：遍历跳过重复节点继续，但必须上报，内容编排成环属于运营事故
type CycleDiagnostic struct {
	ConceptID string   `json:"conceptId"`
	Chain     []string `json:"chain"` // 发现环时的访问链，最后一项即重入节点
}

func (d CycleDiagnostic) String() string {
	return fmt.Sprintf("prerequisite cycle at %s: %s", d.ConceptID, strings.Join(d.Chain, " -> "))
}
