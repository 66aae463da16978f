package synth

import (
	"slices"

	"Denominator/internal/domain/models"
)

// historicalAnchors are year-end snapshots from 1913 (Fed created) through 2025.
// Values are trillions of USD; gold is USD per troy ounce.
// Sources: FRED, ECB, BoJ, PBoC, BIS and historical estimates.
var historicalAnchors = []models.AnnualSnapshot{
	{Year: 1913, M2US: 0.020, M2EU: 0.025, M2Japan: 0.003, M2China: 0.002, FedBS: 0.001, ECBBS: 0.002, BoJBS: 0.001, PBoCBS: 0.001, TGA: 0.001, RRP: 0, GoldUSD: 20.67},
	{Year: 1918, M2US: 0.035, M2EU: 0.045, M2Japan: 0.006, M2China: 0.003, FedBS: 0.005, ECBBS: 0.008, BoJBS: 0.002, PBoCBS: 0.001, TGA: 0.002, RRP: 0, GoldUSD: 20.67},
	{Year: 1920, M2US: 0.034, M2EU: 0.050, M2Japan: 0.007, M2China: 0.003, FedBS: 0.006, ECBBS: 0.010, BoJBS: 0.002, PBoCBS: 0.001, TGA: 0.001, RRP: 0, GoldUSD: 20.67},
	{Year: 1929, M2US: 0.046, M2EU: 0.055, M2Japan: 0.010, M2China: 0.004, FedBS: 0.005, ECBBS: 0.008, BoJBS: 0.003, PBoCBS: 0.001, TGA: 0.001, RRP: 0, GoldUSD: 20.63},
	{Year: 1933, M2US: 0.032, M2EU: 0.040, M2Japan: 0.009, M2China: 0.003, FedBS: 0.008, ECBBS: 0.006, BoJBS: 0.003, PBoCBS: 0.001, TGA: 0.002, RRP: 0, GoldUSD: 26.33},
	{Year: 1940, M2US: 0.055, M2EU: 0.048, M2Japan: 0.012, M2China: 0.004, FedBS: 0.020, ECBBS: 0.012, BoJBS: 0.005, PBoCBS: 0.002, TGA: 0.002, RRP: 0, GoldUSD: 33.85},
	{Year: 1945, M2US: 0.127, M2EU: 0.060, M2Japan: 0.020, M2China: 0.005, FedBS: 0.045, ECBBS: 0.018, BoJBS: 0.008, PBoCBS: 0.002, TGA: 0.025, RRP: 0, GoldUSD: 34.71},
	{Year: 1950, M2US: 0.150, M2EU: 0.080, M2Japan: 0.015, M2China: 0.006, FedBS: 0.040, ECBBS: 0.020, BoJBS: 0.006, PBoCBS: 0.003, TGA: 0.005, RRP: 0, GoldUSD: 34.72},
	{Year: 1960, M2US: 0.312, M2EU: 0.180, M2Japan: 0.040, M2China: 0.012, FedBS: 0.050, ECBBS: 0.035, BoJBS: 0.012, PBoCBS: 0.008, TGA: 0.005, RRP: 0, GoldUSD: 35.27},
	{Year: 1971, M2US: 0.710, M2EU: 0.400, M2Japan: 0.120, M2China: 0.020, FedBS: 0.075, ECBBS: 0.060, BoJBS: 0.025, PBoCBS: 0.012, TGA: 0.010, RRP: 0, GoldUSD: 41.25},
	{Year: 1975, M2US: 1.020, M2EU: 0.620, M2Japan: 0.210, M2China: 0.028, FedBS: 0.095, ECBBS: 0.080, BoJBS: 0.038, PBoCBS: 0.015, TGA: 0.012, RRP: 0, GoldUSD: 161},
	{Year: 1980, M2US: 1.600, M2EU: 0.950, M2Japan: 0.350, M2China: 0.040, FedBS: 0.150, ECBBS: 0.120, BoJBS: 0.055, PBoCBS: 0.020, TGA: 0.015, RRP: 0, GoldUSD: 615},
	{Year: 1985, M2US: 2.500, M2EU: 1.300, M2Japan: 0.550, M2China: 0.065, FedBS: 0.200, ECBBS: 0.170, BoJBS: 0.085, PBoCBS: 0.030, TGA: 0.020, RRP: 0, GoldUSD: 317},
	{Year: 1990, M2US: 3.280, M2EU: 2.100, M2Japan: 1.100, M2China: 0.150, FedBS: 0.280, ECBBS: 0.280, BoJBS: 0.180, PBoCBS: 0.060, TGA: 0.030, RRP: 0, GoldUSD: 383},
	{Year: 1995, M2US: 3.640, M2EU: 2.800, M2Japan: 1.350, M2China: 0.700, FedBS: 0.400, ECBBS: 0.350, BoJBS: 0.350, PBoCBS: 0.150, TGA: 0.030, RRP: 0, GoldUSD: 387},
	{Year: 2000, M2US: 4.920, M2EU: 4.500, M2Japan: 2.100, M2China: 1.600, FedBS: 0.620, ECBBS: 0.750, BoJBS: 0.650, PBoCBS: 0.450, TGA: 0.035, RRP: 0, GoldUSD: 273},
	{Year: 2003, M2US: 6.070, M2EU: 5.800, M2Japan: 2.500, M2China: 2.800, FedBS: 0.720, ECBBS: 0.900, BoJBS: 1.000, PBoCBS: 0.700, TGA: 0.035, RRP: 0, GoldUSD: 416},
	{Year: 2007, M2US: 7.500, M2EU: 8.200, M2Japan: 2.800, M2China: 5.400, FedBS: 0.870, ECBBS: 1.500, BoJBS: 1.050, PBoCBS: 1.800, TGA: 0.040, RRP: 0, GoldUSD: 836},
	{Year: 2009, M2US: 8.500, M2EU: 8.800, M2Japan: 3.000, M2China: 8.500, FedBS: 2.100, ECBBS: 2.000, BoJBS: 1.200, PBoCBS: 2.800, TGA: 0.100, RRP: 0, GoldUSD: 1096},
	{Year: 2012, M2US: 10.400, M2EU: 9.600, M2Japan: 3.400, M2China: 15.500, FedBS: 2.900, ECBBS: 3.000, BoJBS: 1.600, PBoCBS: 4.200, TGA: 0.080, RRP: 0.10, GoldUSD: 1675},
	{Year: 2014, M2US: 11.650, M2EU: 10.500, M2Japan: 7.800, M2China: 20.000, FedBS: 4.500, ECBBS: 2.000, BoJBS: 2.900, PBoCBS: 5.000, TGA: 0.200, RRP: 0.15, GoldUSD: 1199},
	{Year: 2015, M2US: 12.300, M2EU: 10.800, M2Japan: 8.200, M2China: 21.500, FedBS: 4.480, ECBBS: 2.700, BoJBS: 3.400, PBoCBS: 5.300, TGA: 0.300, RRP: 0.20, GoldUSD: 1060},
	{Year: 2016, M2US: 13.200, M2EU: 11.400, M2Japan: 8.700, M2China: 23.000, FedBS: 4.450, ECBBS: 3.400, BoJBS: 4.000, PBoCBS: 5.500, TGA: 0.350, RRP: 0.15, GoldUSD: 1151},
	{Year: 2017, M2US: 13.800, M2EU: 12.400, M2Japan: 9.100, M2China: 24.500, FedBS: 4.400, ECBBS: 4.400, BoJBS: 4.800, PBoCBS: 5.800, TGA: 0.200, RRP: 0.10, GoldUSD: 1296},
	{Year: 2018, M2US: 14.350, M2EU: 12.800, M2Japan: 9.400, M2China: 25.800, FedBS: 4.100, ECBBS: 4.700, BoJBS: 5.200, PBoCBS: 5.600, TGA: 0.350, RRP: 0.05, GoldUSD: 1282},
	{Year: 2019, M2US: 15.300, M2EU: 13.100, M2Japan: 9.700, M2China: 27.500, FedBS: 4.200, ECBBS: 4.700, BoJBS: 5.500, PBoCBS: 5.800, TGA: 0.400, RRP: 0.00, GoldUSD: 1517},
	{Year: 2020, M2US: 19.100, M2EU: 14.800, M2Japan: 10.500, M2China: 32.000, FedBS: 7.400, ECBBS: 7.000, BoJBS: 6.700, PBoCBS: 6.200, TGA: 1.600, RRP: 0.00, GoldUSD: 1898},
	{Year: 2021, M2US: 21.600, M2EU: 16.000, M2Japan: 11.000, M2China: 36.000, FedBS: 8.800, ECBBS: 8.600, BoJBS: 7.200, PBoCBS: 6.500, TGA: 0.450, RRP: 1.90, GoldUSD: 1829},
	{Year: 2022, M2US: 21.200, M2EU: 15.200, M2Japan: 10.400, M2China: 38.000, FedBS: 8.500, ECBBS: 8.000, BoJBS: 7.400, PBoCBS: 6.300, TGA: 0.500, RRP: 2.20, GoldUSD: 1824},
	{Year: 2023, M2US: 20.800, M2EU: 14.500, M2Japan: 10.200, M2China: 40.500, FedBS: 7.700, ECBBS: 7.000, BoJBS: 7.500, PBoCBS: 6.500, TGA: 0.750, RRP: 0.70, GoldUSD: 2063},
	{Year: 2024, M2US: 21.500, M2EU: 14.800, M2Japan: 10.000, M2China: 43.000, FedBS: 7.100, ECBBS: 6.500, BoJBS: 7.600, PBoCBS: 7.000, TGA: 0.800, RRP: 0.40, GoldUSD: 2625},
	{Year: 2025, M2US: 22.300, M2EU: 15.200, M2Japan: 10.200, M2China: 45.500, FedBS: 7.000, ECBBS: 6.300, BoJBS: 7.800, PBoCBS: 7.500, TGA: 0.700, RRP: 0.30, GoldUSD: 2850},
}

// assetAnchors are year-end asset-class valuations covering the same horizon.
var assetAnchors = []models.AssetSnapshot{
	{Year: 1913, SP500: 8.0, EquitiesMcap: 0.030, BondsMcap: 0.040, RealEstateMcap: 0.120, BitcoinMcap: 0, GoldTonnes: 45000},
	{Year: 1929, SP500: 24.4, EquitiesMcap: 0.090, BondsMcap: 0.070, RealEstateMcap: 0.200, BitcoinMcap: 0, GoldTonnes: 52000},
	{Year: 1933, SP500: 10.1, EquitiesMcap: 0.030, BondsMcap: 0.060, RealEstateMcap: 0.150, BitcoinMcap: 0, GoldTonnes: 54000},
	{Year: 1945, SP500: 17.4, EquitiesMcap: 0.070, BondsMcap: 0.300, RealEstateMcap: 0.250, BitcoinMcap: 0, GoldTonnes: 62000},
	{Year: 1960, SP500: 58.1, EquitiesMcap: 0.450, BondsMcap: 0.400, RealEstateMcap: 0.900, BitcoinMcap: 0, GoldTonnes: 76000},
	{Year: 1971, SP500: 102.1, EquitiesMcap: 1.000, BondsMcap: 0.900, RealEstateMcap: 2.000, BitcoinMcap: 0, GoldTonnes: 88000},
	{Year: 1980, SP500: 135.8, EquitiesMcap: 1.800, BondsMcap: 2.500, RealEstateMcap: 6.000, BitcoinMcap: 0, GoldTonnes: 100000},
	{Year: 1990, SP500: 330.2, EquitiesMcap: 9.400, BondsMcap: 14.000, RealEstateMcap: 25.000, BitcoinMcap: 0, GoldTonnes: 120000},
	{Year: 2000, SP500: 1320.3, EquitiesMcap: 32.000, BondsMcap: 35.000, RealEstateMcap: 60.000, BitcoinMcap: 0, GoldTonnes: 140000},
	{Year: 2007, SP500: 1468.4, EquitiesMcap: 60.000, BondsMcap: 75.000, RealEstateMcap: 150.000, BitcoinMcap: 0, GoldTonnes: 158000},
	{Year: 2009, SP500: 1115.1, EquitiesMcap: 47.000, BondsMcap: 82.000, RealEstateMcap: 140.000, BitcoinMcap: 0, GoldTonnes: 163000},
	{Year: 2010, SP500: 1257.6, EquitiesMcap: 54.000, BondsMcap: 88.000, RealEstateMcap: 150.000, BitcoinMcap: 0.000001, GoldTonnes: 166000},
	{Year: 2013, SP500: 1848.4, EquitiesMcap: 64.000, BondsMcap: 95.000, RealEstateMcap: 180.000, BitcoinMcap: 0.011, GoldTonnes: 174000},
	{Year: 2017, SP500: 2673.6, EquitiesMcap: 85.000, BondsMcap: 105.000, RealEstateMcap: 230.000, BitcoinMcap: 0.240, GoldTonnes: 187000},
	{Year: 2020, SP500: 3756.1, EquitiesMcap: 95.000, BondsMcap: 123.000, RealEstateMcap: 290.000, BitcoinMcap: 0.540, GoldTonnes: 197000},
	{Year: 2021, SP500: 4766.2, EquitiesMcap: 120.000, BondsMcap: 125.000, RealEstateMcap: 330.000, BitcoinMcap: 0.870, GoldTonnes: 201000},
	{Year: 2022, SP500: 3839.5, EquitiesMcap: 100.000, BondsMcap: 128.000, RealEstateMcap: 340.000, BitcoinMcap: 0.320, GoldTonnes: 205000},
	{Year: 2024, SP500: 5881.6, EquitiesMcap: 115.000, BondsMcap: 140.000, RealEstateMcap: 380.000, BitcoinMcap: 1.840, GoldTonnes: 212000},
	{Year: 2025, SP500: 6500.0, EquitiesMcap: 125.000, BondsMcap: 145.000, RealEstateMcap: 390.000, BitcoinMcap: 2.100, GoldTonnes: 216000},
}

// simulationPhases drive the monthly simulation from 2020 onward.
// Rates are average monthly compounding implied by consecutive year-end anchors.
var simulationPhases = []models.Phase{
	{
		Year: 2020, Name: "covid-qe",
		Rates:    models.MonthlyRates{M2US: 0.0187, M2EU: 0.0102, M2Japan: 0.0066, M2China: 0.0127, FedBS: 0.0483, ECBBS: 0.0338, BoJBS: 0.0166, PBoCBS: 0.0056, GoldUSD: 0.0188},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 1.200, TGAJitter: 0.400, RRPTarget: 0.020, RRPJitter: 0.020,
	},
	{
		Year: 2021, Name: "peak-stimulus",
		Rates:    models.MonthlyRates{M2US: 0.0103, M2EU: 0.0065, M2Japan: 0.0039, M2China: 0.0099, FedBS: 0.0145, ECBBS: 0.0173, BoJBS: 0.0060, PBoCBS: 0.0039, GoldUSD: -0.0031},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 0.600, TGAJitter: 0.300, RRPTarget: 1.000, RRPJitter: 0.600,
	},
	{
		Year: 2022, Name: "tightening",
		Rates:    models.MonthlyRates{M2US: -0.0016, M2EU: -0.0043, M2Japan: -0.0047, M2China: 0.0045, FedBS: -0.0029, ECBBS: -0.0060, BoJBS: 0.0023, PBoCBS: -0.0026, GoldUSD: -0.0002},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 0.600, TGAJitter: 0.200, RRPTarget: 2.100, RRPJitter: 0.200,
	},
	{
		Year: 2023, Name: "qt-rrp-drain",
		Rates:    models.MonthlyRates{M2US: -0.0016, M2EU: -0.0039, M2Japan: -0.0016, M2China: 0.0053, FedBS: -0.0082, ECBBS: -0.0111, BoJBS: 0.0011, PBoCBS: 0.0026, GoldUSD: 0.0103},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 0.550, TGAJitter: 0.250, RRPTarget: 1.400, RRPJitter: 0.600,
	},
	{
		Year: 2024, Name: "easing-whispers",
		Rates:    models.MonthlyRates{M2US: 0.0028, M2EU: 0.0017, M2Japan: -0.0016, M2China: 0.0050, FedBS: -0.0067, ECBBS: -0.0062, BoJBS: 0.0011, PBoCBS: 0.0062, GoldUSD: 0.0203},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 0.750, TGAJitter: 0.100, RRPTarget: 0.450, RRPJitter: 0.250,
	},
	{
		Year: 2025, Name: "re-expansion",
		Rates:    models.MonthlyRates{M2US: 0.0030, M2EU: 0.0022, M2Japan: 0.0017, M2China: 0.0047, FedBS: -0.0012, ECBBS: -0.0026, BoJBS: 0.0022, PBoCBS: 0.0058, GoldUSD: 0.0069},
		NoiseAmp: DefaultNoiseAmp, TGATarget: 0.750, TGAJitter: 0.100, RRPTarget: 0.200, RRPJitter: 0.150,
	},
}

// HistoricalAnchors returns a copy of the compiled-in liquidity anchors.
func HistoricalAnchors() []models.AnnualSnapshot { return slices.Clone(historicalAnchors) }

// AssetAnchors returns a copy of the compiled-in asset anchors.
func AssetAnchors() []models.AssetSnapshot { return slices.Clone(assetAnchors) }

// SimulationPhases returns a copy of the compiled-in monthly phases.
func SimulationPhases() []models.Phase { return slices.Clone(simulationPhases) }
