package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/AmarBego/GitTop/internal/model"
)

// Load reads the rule document from path using Viper.
//
// A missing file yields the default (enabled, empty) rule set. A file
// that exists but cannot be parsed falls back to an empty, disabled set,
// so the application stays usable with "show everything" semantics
// instead of failing to start.
func Load(path string, log *logrus.Logger) model.RuleSet {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return model.DefaultRuleSet()
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return model.DefaultRuleSet()
		}
		log.WithError(err).WithField("path", path).
			Warn("failed to read rule document; rules disabled")
		return model.DisabledRuleSet()
	}

	var rs model.RuleSet
	if err := v.Unmarshal(&rs); err != nil {
		log.WithError(err).WithField("path", path).
			Warn("failed to parse rule document; rules disabled")
		return model.DisabledRuleSet()
	}

	sanitize(&rs)
	return rs
}

// sanitize drops malformed persisted rules so one bad entry never
// poisons evaluation: rules without an id get a fresh one, unknown
// actions fall back to Show, and duplicate account rules collapse to the
// first occurrence per account.
func sanitize(rs *model.RuleSet) {
	seen := make(map[string]bool, len(rs.AccountRules))
	kept := rs.AccountRules[:0]
	for _, r := range rs.AccountRules {
		key := foldAccount(r.Account)
		if r.Account == "" || seen[key] {
			continue
		}
		seen[key] = true
		if r.ID == "" {
			r.ID = model.NewAccountRule(r.Account).ID
		}
		if r.OutsideBehavior != model.OutsideSuppress {
			r.OutsideBehavior = model.OutsideAllowAnyway
		}
		kept = append(kept, r)
	}
	rs.AccountRules = kept

	for i := range rs.OrgRules {
		if rs.OrgRules[i].ID == "" {
			rs.OrgRules[i] = model.NewOrgRule(
				rs.OrgRules[i].Org, rs.OrgRules[i].Action, rs.OrgRules[i].Priority)
		}
		if !rs.OrgRules[i].Action.Valid() {
			rs.OrgRules[i].Action = model.ActionShow
		}
	}
	for i := range rs.TypeRules {
		if rs.TypeRules[i].ID == "" {
			rs.TypeRules[i] = model.NewTypeRule(
				rs.TypeRules[i].Reason, rs.TypeRules[i].Account,
				rs.TypeRules[i].Action, rs.TypeRules[i].Priority)
		}
		if !rs.TypeRules[i].Action.Valid() {
			rs.TypeRules[i].Action = model.ActionShow
		}
	}
}

// Save writes the rule document to a YAML file at path, creating parent
// directories if needed.
func Save(path string, rs model.RuleSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating rules directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("enabled", rs.Enabled)
	v.Set("account_rules", rs.AccountRules)
	v.Set("org_rules", rs.OrgRules)
	v.Set("type_rules", rs.TypeRules)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing rules to %s: %w", path, err)
	}

	return nil
}

// SaveSilent writes the rule document, logging and swallowing any error.
// The in-memory rule set stays authoritative for the running session, so
// a transient disk error never blocks further edits.
func SaveSilent(path string, rs model.RuleSet, log *logrus.Logger) {
	if err := Save(path, rs); err != nil {
		log.WithError(err).WithField("path", path).
			Error("failed to save rule document")
	}
}
