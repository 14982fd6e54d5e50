package file

import (
	"fmt"
	"sync"
)

const (
	// DefaultMaxUploadSize is the global upload ceiling (200 MB).
	DefaultMaxUploadSize = int64(200 * 1024 * 1024)

	errLimitPositiveFmt  = "size limit must be positive: %d"
	errSizeExceedsFmt    = "file size %d exceeds limit of %d bytes"
	errLimitRuleScopeFmt = "size limit rule must name at least one type or format"
)

// LimitRule narrows the global upload limit for the named types and/or
// formats. A rule never broadens the global limit.
type LimitRule struct {
	Types    []Type
	Formats  []Format
	MaxBytes int64
}

// matches applies every dimension the rule names: a rule listing both
// types and formats constrains only uploads matching both.
func (r LimitRule) matches(t Type, f Format) bool {
	if len(r.Types) > 0 && !containsType(r.Types, t) {
		return false
	}
	if len(r.Formats) > 0 && !containsFormat(r.Formats, f) {
		return false
	}
	return true
}

func containsType(types []Type, t Type) bool {
	for _, rt := range types {
		if rt == t {
			return true
		}
	}
	return false
}

func containsFormat(formats []Format, f Format) bool {
	for _, rf := range formats {
		if rf == f {
			return true
		}
	}
	return false
}

// LimitPolicy holds the global upload limit and any narrowing rules.
// Safe for concurrent use.
type LimitPolicy struct {
	mu     sync.RWMutex
	global int64
	rules  []LimitRule
}

func NewLimitPolicy() *LimitPolicy {
	return &LimitPolicy{global: DefaultMaxUploadSize}
}

// SetGlobal replaces the global upload limit.
func (p *LimitPolicy) SetGlobal(maxBytes int64) error {
	if maxBytes <= 0 {
		return fmt.Errorf(errLimitPositiveFmt, maxBytes)
	}

	p.mu.Lock()
	p.global = maxBytes
	p.mu.Unlock()
	return nil
}

// Global returns the current global upload limit.
func (p *LimitPolicy) Global() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.global
}

// AddRule registers a scoped limit. Rules accumulate; when several rules
// match an upload, the strictest bound wins.
func (p *LimitPolicy) AddRule(rule LimitRule) error {
	if rule.MaxBytes <= 0 {
		return fmt.Errorf(errLimitPositiveFmt, rule.MaxBytes)
	}
	if len(rule.Types) == 0 && len(rule.Formats) == 0 {
		return fmt.Errorf(errLimitRuleScopeFmt)
	}

	p.mu.Lock()
	p.rules = append(p.rules, rule)
	p.mu.Unlock()
	return nil
}

// EffectiveLimit returns the limit that applies to the given type and
// format: the minimum of the global limit and every matching rule.
func (p *LimitPolicy) EffectiveLimit(t Type, f Format) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	limit := p.global
	for _, rule := range p.rules {
		if !rule.matches(t, f) {
			continue
		}
		if rule.MaxBytes < limit {
			limit = rule.MaxBytes
		}
	}
	return limit
}

// Check verifies the size against the effective limit for the upload.
func (p *LimitPolicy) Check(t Type, f Format, sizeBytes int64) error {
	limit := p.EffectiveLimit(t, f)
	if sizeBytes > limit {
		return fmt.Errorf(errSizeExceedsFmt, sizeBytes, limit)
	}
	return nil
}
