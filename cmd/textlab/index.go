package main

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/textlab/internal/index"
)

func (a *app) index(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "index: expected build, add, query or sql")
		return errUsage
	}
	switch args[0] {
	case "build":
		return a.indexBuild(ctx, args[1:])
	case "add":
		return a.indexAdd(ctx, args[1:])
	case "query":
		return a.indexQuery(ctx, args[1:])
	case "sql":
		return a.indexSQL(ctx, args[1:])
	}
	fmt.Fprintf(a.stderr, "index: unknown subcommand %q\n", args[0])
	return errUsage
}

func (a *app) indexBuild(ctx context.Context, args []string) error {
	fs := a.newFlags("index build")
	dir := fs.String("dir", a.cfg.Paths.Input, "folder of documents to index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	ix, err := index.FromFolder(ctx, *dir, c)
	if err != nil {
		return err
	}
	if err := ix.Save(a.cfg.Paths.Index); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Indexed %d documents into %s\n", ix.Len(), a.cfg.Paths.Index)
	return nil
}

func (a *app) indexAdd(ctx context.Context, args []string) error {
	fs := a.newFlags("index add")
	file := fs.String("file", "", "document to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "file", *file); err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	ix, err := index.Load(a.cfg.Paths.Index, c)
	if err != nil {
		return err
	}
	if err := ix.AddFile(ctx, *file); err != nil {
		return err
	}
	if err := ix.Save(a.cfg.Paths.Index); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Index now holds %d documents\n", ix.Len())
	return nil
}

func (a *app) indexQuery(ctx context.Context, args []string) error {
	fs := a.newFlags("index query")
	q := fs.String("q", "", "question")
	k := fs.Int("k", a.cfg.Index.TopK, "number of passages")
	answer := fs.Bool("answer", false, "answer the question from the top passages")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.required(fs, "q", *q); err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	ix, err := index.Load(a.cfg.Paths.Index, c)
	if err != nil {
		return err
	}

	if *answer {
		out, err := ix.Respond(ctx, c, *q, *k)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, out)
		return nil
	}
	hits, err := ix.Query(ctx, *q, *k)
	if err != nil {
		return err
	}
	for _, h := range hits {
		fmt.Fprintf(a.stdout, "%.4f\t%s\n", h.Score, h.ID)
	}
	return nil
}

func (a *app) indexSQL(ctx context.Context, args []string) error {
	fs := a.newFlags("index sql")
	driver := fs.String("driver", a.cfg.Index.Driver, "postgres or sqlite")
	dsn := fs.String("dsn", a.cfg.Index.DSN, "data source name")
	table := fs.String("table", a.cfg.Index.Table, "table with id and text columns")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{{"driver", *driver}, {"dsn", *dsn}, {"table", *table}} {
		if err := a.required(fs, f.name, f.value); err != nil {
			return err
		}
	}

	db, err := index.OpenSQL(ctx, *driver, *dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	docs, err := index.LoadSQL(ctx, db, *table)
	if err != nil {
		return err
	}

	c, err := a.client()
	if err != nil {
		return err
	}
	ix := index.New(c)
	if err := ix.Add(ctx, docs...); err != nil {
		return err
	}
	if err := ix.Save(a.cfg.Paths.Index); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Indexed %d rows from %s into %s\n", ix.Len(), *table, a.cfg.Paths.Index)
	return nil
}
