// Package domain models NOAA Storm Prediction Center (SPC) convective outlooks
// and the rules used to classify and render them.
//
// # Data Source
//
// Outlooks are published as GeoJSON feature collections under
// https://www.spc.noaa.gov/products/outlook/ (days 1-3) and
// https://www.spc.noaa.gov/products/exper/day4-8/ (the experimental day 4-8
// product). Archived 2021 snapshots under /products/outlook/archive/2021/ are
// used for the "test" day so the pipeline can be demoed without live data.
//
// # Outlook Categories
//
//	cat   categorical risk            days 1-3, test
//	tor   tornado probability         days 1-2, test
//	wind  damaging wind probability   days 1-2, test
//	hail  large hail probability      days 1-2, test
//	prob  total severe probability    day 3
//	d4-8  day 4-8 severe probability  days 4-8, test
//
// # Risk Labels
//
// Every feature carries its tier in the LABEL property. The vocabulary is
// category specific:
//
//	cat:             TSTM < MRGL < SLGT < ENH < MDT < HIGH
//	tor:             0.02 < 0.05 < 0.10 < 0.15 < 0.30 < 0.45 < 0.60
//	wind, hail, prob 0.05 < 0.15 < 0.30 < 0.45 < 0.60
//	d4-8:            0.15 < 0.30
//
// "SIGN" (sometimes "sig") marks the significant-severe hatched area. It is a
// presentation modifier layered over the probability polygons, never a tier,
// so it carries no rank.
//
// Labels outside a category's table are not errors. SPC introduces and retires
// labels without notice, so unknown labels render in the fallback color (blue)
// and are ignored when computing the highest risk.
//
// # Geometry
//
// Features are Polygon or MultiPolygon in WGS-84 longitude/latitude. Only the
// outer ring of each polygon is drawn; outlook areas never carry holes. An
// outlook with no features, or whose features have no coordinate rings, means
// no outlook is currently issued (see [IsAvailable]).
package domain
