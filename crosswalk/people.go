package crosswalk

import (
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/iga/dedupe"
	"github.com/lehigh-university-libraries/iga/hub"
	"github.com/lehigh-university-libraries/iga/source"
	"github.com/lehigh-university-libraries/iga/vocab"
)

// creatorList resolves the creators once. Contributors need them to skip
// people already credited as authors.
func (b *build) creatorList() ([]hub.RoleAssignment, error) {
	if b.authors == nil {
		list, err := b.findCreators()
		b.authors = &list
		b.authorsErr = err
	}
	return *b.authors, b.authorsErr
}

func (b *build) findCreators() ([]hub.RoleAssignment, error) {
	if items := b.machine.List("author"); len(items) > 0 {
		if list := dedupe.RoleAssignments(b.entities(b.machine, items, "")); len(list) > 0 {
			slog.Debug("using codemeta author as creators", "count", len(list))
			return list, nil
		}
	}
	if items := b.citation.List("authors"); len(items) > 0 {
		if list := dedupe.RoleAssignments(b.entities(b.citation, items, "")); len(list) > 0 {
			slog.Debug("using cff authors as creators", "count", len(list))
			return list, nil
		}
	}

	// The release author is used only when the account has a display name;
	// a bare login says little about who wrote the software.
	if login := b.release.Author.Login; login != "" {
		acct := b.account(b.release.Author)
		if strings.TrimSpace(acct.Name) != "" {
			if ra, ok := b.resolver.FromAccount(b.ctx, acct); ok {
				slog.Debug("using release author as creator", "login", login)
				return []hub.RoleAssignment{ra}, nil
			}
		}
	}
	if login := b.info.Owner.Login; login != "" {
		if ra, ok := b.resolver.FromAccount(b.ctx, b.account(b.info.Owner)); ok {
			slog.Debug("using repository owner as creator", "login", login)
			return []hub.RoleAssignment{ra}, nil
		}
	}

	return nil, &hub.MissingDataError{
		Field:  "creators",
		Reason: "no author in codemeta.json, CITATION.cff, the release or the repository owner",
	}
}

func (b *build) creators() error {
	list, err := b.creatorList()
	if err != nil {
		return err
	}
	b.rec.Creators = list
	return nil
}

// probableBot reports whether a platform account is automation.
func probableBot(acct source.Account) bool {
	if acct.Type == source.AccountBot {
		return true
	}
	login := strings.ToLower(acct.Login)
	for _, suffix := range []string{"[bot]", "-bot", "dependabot", "daemon"} {
		if strings.HasSuffix(login, suffix) {
			return true
		}
	}
	return false
}

func (b *build) contributors() error {
	// A missing creator is reported by the creators field.
	authors, _ := b.creatorList()
	isAuthor := func(ra hub.RoleAssignment) bool {
		return contains(authors, func(a hub.RoleAssignment) bool {
			return dedupe.Match(a.PersonOrOrg, ra.PersonOrOrg)
		})
	}
	role := func(id string) string {
		return b.checkedTerm(vocab.ContributorRoles, id, "other")
	}

	var list []hub.RoleAssignment
	list = append(list, b.entities(b.citation, b.citation.List("contact"), role("contactperson"))...)
	list = append(list, b.entities(b.machine, b.machine.List("sponsor"), role("sponsor"))...)
	list = append(list, b.entities(b.machine, b.machine.List("producer"), role("producer"))...)
	list = append(list, b.entities(b.machine, b.machine.List("editor"), role("editor"))...)
	list = append(list, b.entities(b.machine, b.machine.List("copyrightHolder"), role("rightsholder"))...)

	for _, ra := range b.entities(b.machine, b.machine.List("maintainer"), role("other")) {
		if isAuthor(ra) {
			slog.Debug("skipping maintainer who is a creator", "name", hub.DisplayName(ra.PersonOrOrg))
			continue
		}
		list = append(list, ra)
	}

	providers := b.machine.List("provider")
	if b.opts.ProviderPolicy == ProviderContributor {
		list = append(list, b.entities(b.machine, providers, role("hostinginstitution"))...)
	} else if len(providers) > 0 {
		slog.Debug("ignoring codemeta provider", "count", len(providers))
	}

	if items := b.machine.List("contributor"); len(items) > 0 {
		for _, ra := range b.entities(b.machine, items, role("other")) {
			if !isAuthor(ra) {
				list = append(list, ra)
			}
		}
	} else if b.includeAll {
		list = append(list, b.platformContributors(role("other"), isAuthor)...)
	}

	b.rec.Contributors = dedupe.RoleAssignments(list)
	return nil
}

func (b *build) platformContributors(role string, skip func(hub.RoleAssignment) bool) []hub.RoleAssignment {
	if b.bundle.Repo == nil {
		return nil
	}
	accounts, err := b.bundle.Repo.Contributors(b.ctx)
	if err != nil {
		slog.Warn("unable to list repository contributors", "repo", b.info.FullName, "error", err)
		return nil
	}
	var out []hub.RoleAssignment
	for _, acct := range accounts {
		if probableBot(acct) {
			slog.Debug("skipping bot contributor", "login", acct.Login)
			continue
		}
		ra, ok := b.resolver.FromAccount(b.ctx, b.account(acct))
		if !ok || skip(ra) {
			continue
		}
		out = append(out, ra.WithRole(role))
	}
	return out
}
