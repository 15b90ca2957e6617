package filesystem

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// String renders the listing as an aligned table, one child per row.
func (l *Listing) String() string {
	if len(l.Entries) == 0 {
		if l.Pattern != "" && l.Total > 0 {
			return fmt.Sprintf("No entries in '%s' match pattern '%s'", l.Path, l.Pattern)
		}
		return fmt.Sprintf("Directory '%s' is empty", l.Path)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contents of '%s':\n", l.Path)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tSIZE\tMODIFIED\tNAME")
	for _, e := range l.Entries {
		kind, size, name := "file", fmt.Sprintf("%d", e.Size), e.Name
		if e.IsDir {
			kind, size, name = "dir", "-", e.Name+"/"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kind, size, e.Modified.Format(time.RFC3339), name)
	}
	tw.Flush()

	fmt.Fprintf(&b, "\n%d %s", len(l.Entries), plural(len(l.Entries), "entry", "entries"))
	if l.Pattern != "" {
		fmt.Fprintf(&b, " matching '%s' (of %d)", l.Pattern, l.Total)
	}
	return b.String()
}

// String renders the metadata record as "Key: value" lines.
func (i *Info) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Path: %s\n", i.Path)
	if i.IsDir {
		b.WriteString("Type: Directory\n")
		fmt.Fprintf(&b, "Items: %d\n", i.Children)
	} else {
		b.WriteString("Type: File\n")
		fmt.Fprintf(&b, "Size: %d bytes\n", i.Size)
		if i.MIMEType != "" {
			fmt.Fprintf(&b, "MIME Type: %s\n", i.MIMEType)
		}
	}
	fmt.Fprintf(&b, "Modified: %s\n", i.Modified.Format(time.RFC3339))
	fmt.Fprintf(&b, "Created: %s\n", i.Created.Format(time.RFC3339))
	fmt.Fprintf(&b, "Permissions: %s (%s)", i.Perm, i.Mode)

	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
