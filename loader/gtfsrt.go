package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Labels used for events decoded from vehicle positions.
const (
	TransitTravelMode = "Transit"
	ActionApproach    = "approach"
)

type vehicleFix struct {
	ts     int64
	lon    float64
	lat    float64
	stopID string
	status gtfsrtpb.VehiclePosition_VehicleStopStatus
}

// DecodeVehiclePositions reads length-delimited FeedMessage snapshots and
// builds the document of one vehicle. An empty vehicleID selects the first
// vehicle seen in the recording.
func DecodeVehiclePositions(r io.Reader, vehicleID string, loc *time.Location) (*RawDocument, error) {
	if loc == nil {
		loc = time.UTC
	}
	br := bufio.NewReader(r)
	opts := protodelim.UnmarshalOptions{UnmarshalOptions: proto.UnmarshalOptions{AllowPartial: true}}

	var fixes []vehicleFix
	for {
		var fm gtfsrtpb.FeedMessage
		err := opts.UnmarshalFrom(br, &fm)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode gtfs-rt recording: %w", err)
		}
		headerTS := int64(fm.GetHeader().GetTimestamp())
		for _, e := range fm.GetEntity() {
			vp := e.GetVehicle()
			if vp == nil || vp.GetPosition() == nil {
				continue
			}
			id := vehicleRef(vp)
			if id == "" {
				continue
			}
			if vehicleID == "" {
				vehicleID = id
			}
			if id != vehicleID {
				continue
			}
			ts := int64(vp.GetTimestamp())
			if ts == 0 {
				ts = headerTS
			}
			fixes = append(fixes, vehicleFix{
				ts:     ts,
				lon:    float64(vp.GetPosition().GetLongitude()),
				lat:    float64(vp.GetPosition().GetLatitude()),
				stopID: vp.GetStopId(),
				status: vp.GetCurrentStatus(),
			})
		}
	}
	if len(fixes) == 0 {
		return nil, fmt.Errorf("no vehicle positions for vehicle %q", vehicleID)
	}

	sort.SliceStable(fixes, func(i, j int) bool { return fixes[i].ts < fixes[j].ts })
	return buildVehicleDocument(dedupeFixes(fixes), loc), nil
}

func vehicleRef(vp *gtfsrtpb.VehiclePosition) string {
	if id := vp.GetVehicle().GetId(); id != "" {
		return id
	}
	return vp.GetVehicle().GetLabel()
}

// dedupeFixes drops repeated reports of the same timestamp, which recordings
// contain whenever the feed did not advance between snapshots.
func dedupeFixes(fixes []vehicleFix) []vehicleFix {
	out := fixes[:0]
	for i, f := range fixes {
		if i > 0 && f.ts == fixes[i-1].ts {
			continue
		}
		out = append(out, f)
	}
	return out
}

func buildVehicleDocument(fixes []vehicleFix, loc *time.Location) *RawDocument {
	points := &RawPointLayer{}
	routesByDay := map[string][][]float64{}
	var dayOrder []string
	for _, f := range fixes {
		at := time.Unix(f.ts, 0).In(loc)
		day := at.Weekday().String()
		coord := []float64{f.lon, f.lat}

		points.Coordinates = append(points.Coordinates, coord)
		points.Time = append(points.Time, at.Format("15:04"))
		points.Day = append(points.Day, day)
		points.Action = append(points.Action, statusAction(f.status))
		points.POIName = append(points.POIName, f.stopID)
		points.TravelMode = append(points.TravelMode, TransitTravelMode)

		if _, ok := routesByDay[day]; !ok {
			dayOrder = append(dayOrder, day)
		}
		routesByDay[day] = append(routesByDay[day], coord)
	}

	trips := &RawTripLayer{}
	for _, day := range dayOrder {
		route := routesByDay[day]
		if len(route) < 2 {
			continue
		}
		trips.Routes = append(trips.Routes, route)
		trips.Day = append(trips.Day, day)
	}
	return &RawDocument{TripLayer: trips, PointLayer: points}
}

func statusAction(s gtfsrtpb.VehiclePosition_VehicleStopStatus) string {
	switch s {
	case gtfsrtpb.VehiclePosition_STOPPED_AT:
		return trace.ActionArrival
	case gtfsrtpb.VehiclePosition_INCOMING_AT:
		return ActionApproach
	default:
		return trace.ActionDeparture
	}
}
