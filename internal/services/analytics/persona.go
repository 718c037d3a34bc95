package analytics

import (
	"fmt"
	"strings"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

// PersonaResponder renders an intel report as an anime persona message.
// Mode "genki" is energetic, every other mode gets the encouraging "semangat" template.
type PersonaResponder struct{}

func NewPersonaResponder() *PersonaResponder { return &PersonaResponder{} }

func (p *PersonaResponder) Render(mode string, intel *models.IntelReport) string {
	if mode == models.PersonaGenki {
		return genki(intel)
	}
	return semangat(intel)
}

func genki(intel *models.IntelReport) string {
	var b strings.Builder
	up := intel.Probability.UpPercent
	b.WriteString("UWAAA SENPAIII!!! ")

	switch {
	case up >= 70:
		fmt.Fprintf(&b, "Probability naik %d%%!!! Ini GOKIL BANGET OMGGG!!! ", up)
	case up >= 50:
		fmt.Fprintf(&b, "Probability naik %d%% nih! Lumayan banget kan~~ ", up)
	default:
		fmt.Fprintf(&b, "Hmmm... probability turun %d%%... Agak risky nih senpai! ", intel.Probability.DownPercent)
	}

	if intel.Pulse.HasAnomaly {
		n := len(intel.Pulse.Anomalies)
		switch intel.Pulse.Severity {
		case models.SeverityMajor:
			b.WriteString("BAHAYA SENPAIII!!! Ada anomali MAJOR detected!!! ")
			fmt.Fprintf(&b, "%d anomali sekaligus!!! CRAZY CRAZY CRAZY!!! ", n)
		case models.SeverityMedium:
			b.WriteString("WASPADA YAA SENPAI!!! Ada pergerakan unusual nih!!! ")
			fmt.Fprintf(&b, "Detected %d anomali medium level!!! ", n)
		default:
			b.WriteString("Ada aktivitas menarik detected~ ")
		}
		for _, a := range intel.Pulse.Anomalies {
			switch {
			case a.Type == models.AnomalyVolumeSpike:
				fmt.Fprintf(&b, "Volume SPIKE %sx!!! ", xutil.Fixed(a.Value, 2))
			case a.Type.IsPriceSpike():
				fmt.Fprintf(&b, "Price bergerak %s%%!!! ", xutil.Fixed(a.Value, 2))
			}
		}
	} else {
		b.WriteString("Market cukup tenang kok senpai~ Normal normal aja! ")
	}

	rec := intel.Recommendation
	switch {
	case strings.Contains(rec, "BULLISH"):
		b.WriteString("AYO GASS TERBANGGG!!! MOON TIMEEE!!! ")
	case strings.Contains(rec, "BEARISH"):
		b.WriteString("Mungkin better hold dulu yaa~ Safety first senpai! ")
	case strings.Contains(rec, "WASPADA"):
		b.WriteString("BE CAREFUL OKAAAY!!! Jangan FOMO yaaa!!! ")
	default:
		b.WriteString("Santai aja dulu yaa~ Observe dulu market-nya! ")
	}

	ch := intel.Probability.Change5m
	fmt.Fprintf(&b, "Current price: $%s (%s%s%% 5m) ", xutil.Fixed(intel.PriceData.Current, 8), signPrefix(ch), xutil.Fixed(ch, 2))
	b.WriteString("Semoga beruntung senpai!!!")
	return b.String()
}

func semangat(intel *models.IntelReport) string {
	var b strings.Builder
	up := intel.Probability.UpPercent
	b.WriteString("HAYOOO SENPAI SEMANGAATTT!!! ")

	switch {
	case up >= 70:
		fmt.Fprintf(&b, "GASSS POLLL %d%% NAIK!!! JANGAN NYERAH SAMPAI KE MOON!!! ", up)
	case up >= 50:
		fmt.Fprintf(&b, "%d%% chance menang nih!!! FIGHT FIGHT FIGHTTT!!! ", up)
	default:
		fmt.Fprintf(&b, "Hmm %d%% turun... TAPI JANGAN MENYERAH YAAA!!! ", intel.Probability.DownPercent)
	}

	if intel.Pulse.HasAnomaly {
		b.WriteString("ADA ACTION BIG TIME!!! ")
		if intel.Pulse.Severity == models.SeverityMajor {
			b.WriteString("SUPER GEDE PERGERAKANNYA!!! HATI-HATI TAPI SEMANGAT TERUS!!! ")
		} else {
			b.WriteString("Ada movement menarik!!! OBSERVE AND CONQUER!!! ")
		}
	}

	if strings.Contains(intel.Recommendation, "BULLISH") {
		b.WriteString("TO THE MOON BABY!!! NEVER GIVE UP!!! ")
	} else {
		b.WriteString("STRATEGIZE DULU SENPAI!!! SMART MOVES ONLY!!! ")
	}
	b.WriteString("YOU CAN DO IT SENPAIII!!!")
	return b.String()
}

var _ domsvc.PersonaResponder = (*PersonaResponder)(nil)
