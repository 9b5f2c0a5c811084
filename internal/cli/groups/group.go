package groups

import (
	"fmt"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

type GroupCmd struct {
	Add    GroupAddCmd    `cmd:"" help:"Create an any-N-of-M habit group."`
	List   GroupListCmd   `cmd:"" help:"List groups with today's progress."`
	Delete GroupDeleteCmd `cmd:"" help:"Delete a group, releasing its members."`
}

type GroupAddCmd struct {
	Name    string   `arg:"" help:"Group name."`
	Habits  []string `help:"Member habit names." required:""`
	Require int      `help:"How many members must be done to satisfy the group." default:"1"`
	Tier    string   `help:"Tier: must_do or nice_to_do." default:"must_do"`
}

func (c *GroupAddCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	var memberIDs []string
	for _, name := range c.Habits {
		h, err := ctx.ResolveHabit(name)
		if err != nil {
			return err
		}
		memberIDs = append(memberIDs, h.ID)
	}

	group, err := eng.CreateGroup(c.Name, models.Tier(c.Tier), c.Require, memberIDs)
	if err != nil {
		return err
	}

	if err := ctx.Store.AddGroup(group); err != nil {
		return err
	}
	// Members now carry the group id.
	for _, id := range group.HabitIDs {
		h, err := eng.Habit(id)
		if err != nil {
			return err
		}
		if err := ctx.Store.UpdateHabit(h); err != nil {
			return err
		}
	}

	fmt.Printf("Created group %q: %d of %d required\n", group.Name, group.RequireCount, len(group.HabitIDs))
	return nil
}

type GroupListCmd struct{}

func (c *GroupListCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	groups := eng.Groups()
	if len(groups) == 0 {
		fmt.Println("No groups found.")
		return nil
	}

	now := time.Now()
	for _, g := range groups {
		count, err := eng.CompletedCount(g.ID, now)
		if err != nil {
			return err
		}
		satisfied, err := eng.GroupSatisfied(g.ID, now)
		if err != nil {
			return err
		}

		status := cli.WarnStyle.Render("open")
		if satisfied {
			status = cli.DoneStyle.Render("done")
		}
		fmt.Printf("%s  %s  %s\n", g.Name,
			cli.MutedStyle.Render(fmt.Sprintf("[%s, %d of %d today]", g.Tier, count, g.RequireCount)),
			status)

		for _, memberID := range g.HabitIDs {
			h, err := eng.Habit(memberID)
			if err != nil {
				continue
			}
			mark := "-"
			if eng.IsCompleted(h.ID, now) {
				mark = "x"
			}
			fmt.Printf("    %s %s\n", mark, h.Name)
		}
	}
	return nil
}

type GroupDeleteCmd struct {
	Name string `arg:"" help:"Group name to delete."`
}

func (c *GroupDeleteCmd) Run(ctx *cli.Context) error {
	group, err := ctx.ResolveGroup(c.Name)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	if err := eng.DeleteGroup(group.ID); err != nil {
		return err
	}
	if err := ctx.Store.DeleteGroup(group.ID); err != nil {
		return err
	}
	// Members fall back to standalone evaluation.
	for _, id := range group.HabitIDs {
		h, err := eng.Habit(id)
		if err != nil {
			continue
		}
		if err := ctx.Store.UpdateHabit(h); err != nil {
			return err
		}
	}

	fmt.Printf("Deleted group %q (member habits kept)\n", group.Name)
	return nil
}
