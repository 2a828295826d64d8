package usecase

import (
	"context"
	"sort"

	"ecom-admin/domain"
	"ecom-admin/pkg/log"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type RolePrivilegeReader interface {
	FindMany(ctx context.Context, filter *domain.RolePrivilegeFilter, option *domain.FindManyOption) ([]*domain.RolePrivilege, error)
}

type MenuGroupReader interface {
	FindMany(ctx context.Context, filter *domain.MenuGroupFilter, option *domain.FindManyOption) ([]*domain.MenuGroup, error)
}

type SubmenuReader interface {
	FindMany(ctx context.Context, filter *domain.SubmenuFilter, option *domain.FindManyOption) ([]*domain.Submenu, error)
}

type MenuReader interface {
	FindMany(ctx context.Context, filter *domain.MenuFilter, option *domain.FindManyOption) ([]*domain.Menu, error)
}

type menuResolver struct {
	privilegeRepo RolePrivilegeReader
	groupRepo     MenuGroupReader
	submenuRepo   SubmenuReader
	menuRepo      MenuReader
	logger        log.Logger
}

func NewMenuResolver(
	privilegeRepo RolePrivilegeReader,
	groupRepo MenuGroupReader,
	submenuRepo SubmenuReader,
	menuRepo MenuReader,
	logger log.Logger,

) domain.MenuResolver {
	return &menuResolver{
		privilegeRepo: privilegeRepo,
		groupRepo:     groupRepo,
		submenuRepo:   submenuRepo,
		menuRepo:      menuRepo,
		logger:        logger,
	}
}

// ResolveMenus walks privilege ids -> privilege rows -> menu groups ->
// submenus -> main menus and assembles the navigation tree. Inactive or
// soft-deleted records drop out at each step. Failures degrade to an empty
// tree with a warning: a broken menu must never block a login.
func (r *menuResolver) ResolveMenus(ctx context.Context, privilegeIDs []string) []*domain.MenuEntry {
	validIDs := coerceUUIDs(privilegeIDs)
	if len(validIDs) == 0 {
		return []*domain.MenuEntry{}
	}

	privileges, err := r.privilegeRepo.FindMany(ctx, &domain.RolePrivilegeFilter{
		IDIn:   validIDs,
		Status: lo.ToPtr(true),
	}, nil)
	if err != nil {
		return r.degrade(ctx, "role privileges", err)
	}
	groupIDs := lo.Uniq(lo.Map(privileges, func(p *domain.RolePrivilege, _ int) string {
		return p.MenuGroupID
	}))
	if len(groupIDs) == 0 {
		return []*domain.MenuEntry{}
	}

	groups, err := r.groupRepo.FindMany(ctx, &domain.MenuGroupFilter{
		IDIn:   groupIDs,
		Status: lo.ToPtr(string(domain.StatusActive)),
	}, nil)
	if err != nil {
		return r.degrade(ctx, "menu groups", err)
	}
	submenuIDs := lo.Uniq(lo.FilterMap(groups, func(g *domain.MenuGroup, _ int) (string, bool) {
		return g.SubmenuID, g.SubmenuID != ""
	}))
	if len(submenuIDs) == 0 {
		return []*domain.MenuEntry{}
	}

	submenus, err := r.submenuRepo.FindMany(ctx, &domain.SubmenuFilter{
		IDIn:   submenuIDs,
		Status: lo.ToPtr(string(domain.StatusActive)),
	}, nil)
	if err != nil {
		return r.degrade(ctx, "submenus", err)
	}
	menuIDs := lo.Uniq(lo.Map(submenus, func(s *domain.Submenu, _ int) string {
		return s.MainMenuID
	}))
	if len(menuIDs) == 0 {
		return []*domain.MenuEntry{}
	}

	menus, err := r.menuRepo.FindMany(ctx, &domain.MenuFilter{
		IDIn:   menuIDs,
		Status: lo.ToPtr(string(domain.StatusActive)),
	}, nil)
	if err != nil {
		return r.degrade(ctx, "menus", err)
	}

	return buildMenuTree(menus, submenus)
}

func (r *menuResolver) degrade(ctx context.Context, step string, err error) []*domain.MenuEntry {
	r.logger.WarnContext(ctx, "Menu resolution degraded to empty tree",
		log.String("step", step), log.Error(err))
	return []*domain.MenuEntry{}
}

// coerceUUIDs drops ids that are not well-formed UUIDs; legacy records held
// free-form values there and must not reach the IN clause.
func coerceUUIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return lo.Uniq(valid)
}

func buildMenuTree(menus []*domain.Menu, submenus []*domain.Submenu) []*domain.MenuEntry {
	entries := make([]*domain.MenuEntry, 0, len(menus))

	for _, menu := range menus {
		icon := menu.Icon
		if icon == "" {
			icon = domain.DefaultMenuIcon
		}

		entry := &domain.MenuEntry{
			Name:      menu.Name,
			Slug:      menu.Slug,
			Icon:      icon,
			SortOrder: menu.SortOrder,
			Children:  []*domain.MenuChild{},
		}

		// Dashboard is a leaf pointing at the root path, never a parent.
		if menu.Slug == domain.DashboardSlug {
			entry.Path = "/"
			entry.Special = true
			entries = append(entries, entry)
			continue
		}

		seen := map[[2]string]struct{}{}
		for _, sub := range submenus {
			if sub.MainMenuID != menu.ID {
				continue
			}
			// A submenu without a path has nothing to navigate to.
			if sub.Path == "" {
				continue
			}
			key := [2]string{sub.Slug, sub.Path}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			entry.Children = append(entry.Children, &domain.MenuChild{
				Name:      sub.Name,
				Slug:      sub.Slug,
				Path:      sub.Path,
				SortOrder: sub.SortOrder,
			})
		}
		if len(entry.Children) == 0 {
			continue
		}

		sort.SliceStable(entry.Children, func(i, j int) bool {
			return entry.Children[i].SortOrder < entry.Children[j].SortOrder
		})
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SortOrder < entries[j].SortOrder
	})
	return entries
}
