package handlers

import (
	"embed"
	"html/template"
	"net/http"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/gauge"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageIDs struct {
	SpeedGauge, SpeedText     string
	RatioGauge, AFRText       string
	AccelBar, AccelText       string
	ThrottleBar, ThrottleText string
	DTC, CruiseForm           string
	AccelRange                string
}

type pageFields struct {
	CruiseEnable, CruiseSpeed, AccelValue string
}

type pageData struct {
	IDs         pageIDs
	Fields      pageFields
	GaugeWidth  int
	GaugeHeight int
}

func newPageData() pageData {
	cfg := gauge.SpeedConfig()
	return pageData{
		IDs: pageIDs{
			SpeedGauge:   vd.IDSpeedGauge,
			SpeedText:    vd.IDSpeedText,
			RatioGauge:   vd.IDRatioGauge,
			AFRText:      vd.IDAFRText,
			AccelBar:     vd.IDAccelBar,
			AccelText:    vd.IDAccelText,
			ThrottleBar:  vd.IDThrottleBar,
			ThrottleText: vd.IDThrottleText,
			DTC:          vd.IDDTCContainer,
			CruiseForm:   vd.IDCruiseForm,
			AccelRange:   vd.IDAccelRange,
		},
		Fields: pageFields{
			CruiseEnable: vd.FieldCruiseEnable,
			CruiseSpeed:  vd.FieldCruiseSpeed,
			AccelValue:   vd.FieldAccelValue,
		},
		GaugeWidth:  cfg.Width,
		GaugeHeight: cfg.Height,
	}
}

// @Summary      Dashboard page
// @Tags         page
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData())
}
