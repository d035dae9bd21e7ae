package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/photolab/photolab/pkg/energy"
	"github.com/photolab/photolab/pkg/types"
)

func (c *Client) ListEntries() ([]types.EntrySummary, error) {
	ret, err := c.Get("/entries")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list entries")
	}

	var entries []types.EntrySummary
	if err := json.Unmarshal([]byte(ret), &entries); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal entries")
	}
	return entries, nil
}

func (c *Client) AddEntry(req types.AddEntryRequest) (*types.EntrySummary, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	ret, err := c.Post("/entries", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to add entry")
	}

	var e types.EntrySummary
	if err := json.Unmarshal([]byte(ret), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &e, nil
}

func (c *Client) GetEntry(index int) (*types.EntryDetail, error) {
	ret, err := c.Get("/entries/" + strconv.Itoa(index))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get entry %d", index)
	}

	var e types.EntryDetail
	if err := json.Unmarshal([]byte(ret), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &e, nil
}

func (c *Client) UpdateEntry(index int, req types.AddEntryRequest) (*types.EntrySummary, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	ret, err := c.Put("/entries/"+strconv.Itoa(index), string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to update entry %d", index)
	}

	var e types.EntrySummary
	if err := json.Unmarshal([]byte(ret), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &e, nil
}

func (c *Client) RemoveEntry(index int) (*types.EntrySummary, error) {
	ret, err := c.Delete("/entries/" + strconv.Itoa(index))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to remove entry %d", index)
	}

	var e types.EntrySummary
	if err := json.Unmarshal([]byte(ret), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &e, nil
}

func (c *Client) ClearEntries() (int, error) {
	ret, err := c.Delete("/entries")
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to clear entries")
	}
	n, err := strconv.Atoi(ret)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal cleared count")
	}
	return n, nil
}

func (c *Client) GetEnergies() ([]energy.Row, error) {
	ret, err := c.Get("/energies")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get energy table")
	}

	var rows []energy.Row
	if err := json.Unmarshal([]byte(ret), &rows); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal energy table")
	}
	return rows, nil
}

func (c *Client) GetResults() (*types.ResultsResponse, error) {
	ret, err := c.Get("/results")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get results")
	}

	var res types.ResultsResponse
	if err := json.Unmarshal([]byte(ret), &res); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal results")
	}
	return &res, nil
}

func (c *Client) GetReport() (string, error) {
	ret, err := c.Get("/report")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get report")
	}
	return ret, nil
}

func (c *Client) Save() (string, error) {
	return c.Post("/save", "")
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	// Remove "" around JSON string. I don't want to use a JSON decoder just for this.
	if len(ret) >= 2 {
		ret = ret[1 : len(ret)-1]
	}
	return ret, nil
}
