package model

import (
	"fmt"
	"strings"
)

// RelationshipState 从查看者视角派生的关系状态，不落库。
// 数值即全序：None < CanBeAccepted < Invited < Friends，分类时数值大的优先。
type RelationshipState int8

const (
	StateNone          RelationshipState = iota // 无关系
	StateCanBeAccepted                          // 对方邀请了我，可接受
	StateInvited                                // 我邀请了对方，等待对方处理
	StateFriends                                // 已是好友
)

var relationshipStateNames = [...]string{
	StateNone:          "None",
	StateCanBeAccepted: "CanBeAccepted",
	StateInvited:       "Invited",
	StateFriends:       "Friends",
}

// AllRelationshipStates 按全序从高到低排列
var AllRelationshipStates = []RelationshipState{StateFriends, StateInvited, StateCanBeAccepted, StateNone}

func (s RelationshipState) String() string {
	if s.Valid() {
		return relationshipStateNames[s]
	}
	return fmt.Sprintf("RelationshipState(%d)", int8(s))
}

// Valid 是否为已定义的状态
func (s RelationshipState) Valid() bool {
	return s >= StateNone && s <= StateFriends
}

// MarshalText 以名称形式输出 JSON
func (s RelationshipState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid relationship state %d", int8(s))
	}
	return []byte(s.String()), nil
}

func (s *RelationshipState) UnmarshalText(text []byte) error {
	parsed, err := ParseRelationshipState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseRelationshipState 解析状态名称（大小写不敏感）
func ParseRelationshipState(name string) (RelationshipState, error) {
	name = strings.TrimSpace(name)
	for i, n := range relationshipStateNames {
		if strings.EqualFold(n, name) {
			return RelationshipState(i), nil
		}
	}
	return StateNone, fmt.Errorf("unknown relationship state %q", name)
}

// ParseRelationshipStates 解析 f_relationships 过滤参数，如 "Friends|Invited"。
// 同时接受 "," 分隔；空串返回 nil，表示不过滤。
func ParseRelationshipStates(raw string) ([]RelationshipState, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '|' || r == ',' })
	seen := make(map[RelationshipState]struct{}, len(parts))
	states := make([]RelationshipState, 0, len(parts))
	for _, p := range parts {
		s, err := ParseRelationshipState(p)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		states = append(states, s)
	}
	return states, nil
}
