package daemon

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/sweep"
	"github.com/photolab/photolab/pkg/types"
	"github.com/photolab/photolab/pkg/version"
)

func entrySummary(index int, e *datalog.Entry) types.EntrySummary {
	return types.EntrySummary{
		Index:            index,
		Kind:             string(e.Kind()),
		WavelengthNM:     e.WavelengthNM(),
		StoppingVoltageV: e.StoppingVoltage(),
	}
}

func entryFromRequest(req types.AddEntryRequest) (*datalog.Entry, error) {
	kind, err := datalog.ParseSourceKind(req.Kind)
	if err != nil {
		return nil, err
	}
	e, err := datalog.NewEntry(req.WavelengthNM, kind)
	if err != nil {
		return nil, err
	}
	if err := e.SetSweep(sweep.NewRecord(req.Samples)); err != nil {
		return nil, err
	}
	return e, nil
}

func parseIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, "index must be an integer")
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return 0, false
	}
	return index, true
}

func (s *server) listEntries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.exp.Datalog().Entries()
	out := make([]types.EntrySummary, 0, len(entries))
	for i, e := range entries {
		out = append(out, entrySummary(i, e))
	}
	c.IndentedJSON(http.StatusOK, out)
}

func (s *server) addEntry(c *gin.Context) {
	var req types.AddEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	e, err := entryFromRequest(req)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.exp.Datalog().Add(e)
	index := s.exp.Datalog().Size() - 1
	logrus.Infof("added entry %d: %s", index, e)
	c.IndentedJSON(http.StatusCreated, entrySummary(index, e))
}

func (s *server) getEntry(c *gin.Context) {
	index, ok := parseIndexParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.exp.Datalog().Get(index)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	c.IndentedJSON(http.StatusOK, types.EntryDetail{
		EntrySummary: entrySummary(index, e),
		Samples:      e.Sweep().Samples(),
	})
}

func (s *server) updateEntry(c *gin.Context) {
	index, ok := parseIndexParam(c)
	if !ok {
		return
	}

	var req types.AddEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	e, err := entryFromRequest(req)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.exp.Datalog().Update(index, e)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// The replacement lands at the end of the datalog, not at the old
	// position.
	newIndex := s.exp.Datalog().Size() - 1
	logrus.Infof("updated entry %d (%s), replacement is now entry %d (%s)", index, old, newIndex, e)
	c.IndentedJSON(http.StatusCreated, entrySummary(newIndex, e))
}

func (s *server) removeEntry(c *gin.Context) {
	index, ok := parseIndexParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.exp.Datalog().Remove(index)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	logrus.Infof("removed entry %d: %s", index, e)
	c.IndentedJSON(http.StatusOK, entrySummary(index, e))
}

func (s *server) clearEntries(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.exp.Datalog().Size()
	s.exp.Datalog().Clear()
	logrus.Infof("cleared datalog (%d entries)", n)
	c.IndentedJSON(http.StatusOK, n)
}

func (s *server) getEnergies(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.exp.EnergyTable()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	c.IndentedJSON(http.StatusOK, rows)
}

func (s *server) getResults(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, res, err := s.exp.Results()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	c.IndentedJSON(http.StatusOK, types.ResultsResponse{Rows: rows, Fit: *res})
}

func (s *server) getReport(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, res, err := s.exp.Results()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	c.String(http.StatusOK, s.exp.Report(res))
}

func (s *server) saveAll(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exp.SaveAll(s.dataDir); err != nil {
		logrus.Errorf("saveAll failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, "saved "+s.exp.Name())
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
