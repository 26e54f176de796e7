package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nrfta/searchresult-go"
	"github.com/nrfta/searchresult-go/source"
)

type listFlags struct {
	identifier string
	page       int
	pageSize   int
	sort       string
	direction  string
}

// listOutput is what list prints.
type listOutput struct {
	Identifier string               `json:"identifier"`
	Items      []*searchresult.Item `json:"items"`
	TotalCount int                  `json:"total_count"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	LastPage   int                  `json:"last_page"`
	HasNext    bool                 `json:"has_next_page"`
}

func newListCommand(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a search result as JSON",
		Example: `  searchresult list --identifier categories --sort id --direction asc --page 2 --page-size 20
  searchresult list -i product-url-path --sort sku --direction desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.identifier == "" {
				return errors.New("--identifier is required")
			}

			pageConfig := searchresult.NewPageConfig().
				WithDefaultSize(a.cfg.Page.DefaultSize).
				WithMaxSize(a.cfg.Page.MaxSize)
			if err := pageConfig.Validate(flags.pageSize); err != nil {
				return err
			}

			opts := []searchresult.Option{
				searchresult.WithLogger(a.logger),
				searchresult.WithQueryLogging(a.cfg.Log.Query),
				searchresult.WithPageConfig(pageConfig),
				searchresult.WithCurPage(flags.page),
				searchresult.WithPageSize(flags.pageSize),
			}
			if flags.sort != "" {
				opts = append(opts, searchresult.WithOrder(flags.sort, searchresult.ParseDirection(flags.direction)))
			}

			return a.withStore(cmd.Context(), func(store source.Store) error {
				c := searchresult.New(store, resolveIdentifier(flags.identifier), opts...)

				out, err := buildListOutput(cmd, c)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			})
		},
	}

	cmd.Flags().StringVarP(&flags.identifier, "identifier", "i", "", "record set identifier (or categories, products)")
	cmd.Flags().IntVar(&flags.page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "page size (0 uses the configured default)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "field to sort by")
	cmd.Flags().StringVar(&flags.direction, "direction", string(searchresult.ASC), "sort direction, asc or desc")

	return cmd
}

func buildListOutput(cmd *cobra.Command, c *searchresult.Collection) (*listOutput, error) {
	ctx := cmd.Context()

	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	total, err := c.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	lastPage, err := c.LastPageNumber(ctx)
	if err != nil {
		return nil, err
	}
	pageInfo, err := c.PageInfo(ctx)
	if err != nil {
		return nil, err
	}
	hasNext, err := pageInfo.HasNextPage()
	if err != nil {
		return nil, err
	}

	return &listOutput{
		Identifier: c.Identifier(),
		Items:      items,
		TotalCount: total,
		Page:       c.CurPage(),
		PageSize:   c.PageSize(),
		LastPage:   lastPage,
		HasNext:    hasNext,
	}, nil
}
