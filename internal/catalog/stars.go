package catalog

// brightStars holds the 50 brightest navigation stars (J2000 coordinates).
var brightStars = []Object{
	{Name: "Sirius", RightAscension: 6.7525, Declination: -16.7161, Magnitude: -1.46, Type: Star},
	{Name: "Canopus", RightAscension: 6.3992, Declination: -52.6956, Magnitude: -0.74, Type: Star},
	{Name: "Arcturus", RightAscension: 14.2611, Declination: 19.1875, Magnitude: -0.05, Type: Star},
	{Name: "Alpha Centauri", RightAscension: 14.6608, Declination: -60.8333, Magnitude: -0.01, Type: Star},
	{Name: "Vega", RightAscension: 18.6156, Declination: 38.7836, Magnitude: 0.03, Type: Star},
	{Name: "Capella", RightAscension: 5.2781, Declination: 46.0067, Magnitude: 0.08, Type: Star},
	{Name: "Rigel", RightAscension: 5.2422, Declination: -8.2017, Magnitude: 0.13, Type: Star},
	{Name: "Procyon", RightAscension: 7.6553, Declination: 5.2250, Magnitude: 0.38, Type: Star},
	{Name: "Achernar", RightAscension: 1.6286, Declination: -57.2367, Magnitude: 0.46, Type: Star},
	{Name: "Betelgeuse", RightAscension: 5.9192, Declination: 7.4071, Magnitude: 0.50, Type: Star},
	{Name: "Hadar", RightAscension: 14.0637, Declination: -60.3731, Magnitude: 0.61, Type: Star},
	{Name: "Altair", RightAscension: 19.8464, Declination: 8.8683, Magnitude: 0.77, Type: Star},
	{Name: "Acrux", RightAscension: 12.4433, Declination: -63.0990, Magnitude: 0.77, Type: Star},
	{Name: "Aldebaran", RightAscension: 4.5987, Declination: 16.5092, Magnitude: 0.85, Type: Star},
	{Name: "Antares", RightAscension: 16.4901, Declination: -26.4320, Magnitude: 0.96, Type: Star},
	{Name: "Spica", RightAscension: 13.4199, Declination: -11.1614, Magnitude: 0.98, Type: Star},
	{Name: "Pollux", RightAscension: 7.7553, Declination: 28.0262, Magnitude: 1.14, Type: Star},
	{Name: "Fomalhaut", RightAscension: 22.9609, Declination: -29.6222, Magnitude: 1.16, Type: Star},
	{Name: "Deneb", RightAscension: 20.6905, Declination: 45.2803, Magnitude: 1.25, Type: Star},
	{Name: "Mimosa", RightAscension: 12.7954, Declination: -59.6884, Magnitude: 1.25, Type: Star},
	{Name: "Regulus", RightAscension: 10.1396, Declination: 11.9672, Magnitude: 1.36, Type: Star},
	{Name: "Adhara", RightAscension: 6.9771, Declination: -28.9721, Magnitude: 1.50, Type: Star},
	{Name: "Castor", RightAscension: 7.5766, Declination: 31.8886, Magnitude: 1.58, Type: Star},
	{Name: "Gacrux", RightAscension: 12.5197, Declination: -57.1133, Magnitude: 1.64, Type: Star},
	{Name: "Bellatrix", RightAscension: 5.4189, Declination: 6.3497, Magnitude: 1.64, Type: Star},
	{Name: "Elnath", RightAscension: 5.4382, Declination: 28.6074, Magnitude: 1.65, Type: Star},
	{Name: "Miaplacidus", RightAscension: 9.2200, Declination: -69.7172, Magnitude: 1.68, Type: Star},
	{Name: "Alnilam", RightAscension: 5.6036, Declination: -1.2019, Magnitude: 1.69, Type: Star},
	{Name: "Alnair", RightAscension: 22.1372, Declination: -46.9608, Magnitude: 1.74, Type: Star},
	{Name: "Alnitak", RightAscension: 5.6793, Declination: -1.9426, Magnitude: 1.74, Type: Star},
	{Name: "Alioth", RightAscension: 12.9006, Declination: 55.9598, Magnitude: 1.77, Type: Star},
	{Name: "Dubhe", RightAscension: 11.0621, Declination: 61.7510, Magnitude: 1.79, Type: Star},
	{Name: "Mirfak", RightAscension: 3.4053, Declination: 49.8612, Magnitude: 1.80, Type: Star},
	{Name: "Wezen", RightAscension: 7.1399, Declination: -26.3932, Magnitude: 1.83, Type: Star},
	{Name: "Sargas", RightAscension: 17.5606, Declination: -42.9979, Magnitude: 1.84, Type: Star},
	{Name: "Kaus Australis", RightAscension: 18.4020, Declination: -34.3846, Magnitude: 1.85, Type: Star},
	{Name: "Avior", RightAscension: 8.3752, Declination: -59.5095, Magnitude: 1.86, Type: Star},
	{Name: "Alkaid", RightAscension: 13.7923, Declination: 49.3133, Magnitude: 1.86, Type: Star},
	{Name: "Menkalinan", RightAscension: 5.9924, Declination: 44.9474, Magnitude: 1.90, Type: Star},
	{Name: "Atria", RightAscension: 16.8111, Declination: -69.0277, Magnitude: 1.91, Type: Star},
	{Name: "Alhena", RightAscension: 6.6285, Declination: 16.3992, Magnitude: 1.93, Type: Star},
	{Name: "Peacock", RightAscension: 20.4275, Declination: -56.7351, Magnitude: 1.94, Type: Star},
	{Name: "Polaris", RightAscension: 2.5303, Declination: 89.2641, Magnitude: 1.97, Type: Star},
	{Name: "Mirzam", RightAscension: 6.3780, Declination: -17.9725, Magnitude: 1.98, Type: Star},
	{Name: "Alphard", RightAscension: 9.4598, Declination: -8.6586, Magnitude: 1.99, Type: Star},
	{Name: "Hamal", RightAscension: 2.1195, Declination: 23.4624, Magnitude: 2.01, Type: Star},
	{Name: "Algieba", RightAscension: 10.3328, Declination: 19.8415, Magnitude: 2.01, Type: Star},
	{Name: "Diphda", RightAscension: 0.7260, Declination: -17.9866, Magnitude: 2.04, Type: Star},
	{Name: "Nunki", RightAscension: 18.9218, Declination: -26.2963, Magnitude: 2.05, Type: Star},
	{Name: "Menkent", RightAscension: 14.0608, Declination: -36.3700, Magnitude: 2.06, Type: Star},
}

// BrightStars returns a copy of the built-in bright-star table.
func BrightStars() []Object {
	out := make([]Object, len(brightStars))
	copy(out, brightStars)
	return out
}
